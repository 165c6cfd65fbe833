package goals

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrInvalidGoal      = errors.New("invalid goal")
	ErrInvalidStatus    = errors.New("invalid goal status")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

const maxProgressPercent = 999

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusActive, StatusCompleted, StatusAbandoned:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

type Goal struct {
	ID              int             `json:"id"`
	UserID          int             `json:"userId"`
	ExerciseID      *int            `json:"exerciseId,omitempty"`
	Type            string          `json:"goalType"`
	Description     string          `json:"description,omitempty"`
	TargetValue     decimal.Decimal `json:"targetValue"`
	CurrentValue    decimal.Decimal `json:"currentValue"`
	Unit            string          `json:"unit,omitempty"`
	StartDate       time.Time       `json:"startDate"`
	TargetDate      *time.Time      `json:"targetDate,omitempty"`
	Status          Status          `json:"status"`
	CompletionDate  *time.Time      `json:"completionDate,omitempty"`
	ProgressPercent float64         `json:"progressPercent"`
}

func (g *Goal) Validate() error {
	g.Type = strings.TrimSpace(g.Type)
	if g.Type == "" {
		return fmt.Errorf("%w: goal type empty", ErrInvalidGoal)
	}
	if g.TargetValue.IsNegative() {
		return fmt.Errorf("%w: negative target", ErrInvalidGoal)
	}
	if g.CurrentValue.IsNegative() {
		return fmt.Errorf("%w: negative current value", ErrInvalidGoal)
	}
	if g.TargetDate != nil && g.TargetDate.Before(g.StartDate) {
		return fmt.Errorf("%w: target date before start date", ErrInvalidGoal)
	}
	return nil
}

// ProgressPercent is current/target as a percentage, capped at 999.
// A target of zero or less gives 0.
func ProgressPercent(current, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	pct := current.Div(target).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(maxProgressPercent)) {
		return maxProgressPercent
	}
	return pct.Round(1).InexactFloat64()
}

// CompletionDate returns the completion date a goal should carry after moving
// to status. Only completed goals have one.
func CompletionDate(status Status, today time.Time) *time.Time {
	if status != StatusCompleted {
		return nil
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

type GoalUpdate struct {
	CurrentValue   *decimal.Decimal
	Status         Status
	CompletionDate *time.Time
}
