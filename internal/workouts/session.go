package workouts

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotFound         = errors.New("workout session not found")
	ErrTemplateNotFound        = errors.New("workout template not found")
	ErrSessionExerciseNotFound = errors.New("session exercise not found")
	ErrSetNotFound             = errors.New("set not found")
	ErrInvalidSet              = errors.New("invalid set")
	ErrInvalidSession          = errors.New("invalid session")
)

type Session struct {
	ID              int               `json:"id"`
	UserID          int               `json:"userId"`
	Name            string            `json:"name"`
	SessionDate     time.Time         `json:"sessionDate"`
	StartTime       *time.Time        `json:"startTime,omitempty"`
	EndTime         *time.Time        `json:"endTime,omitempty"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	Bodyweight      *decimal.Decimal  `json:"bodyweight,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Completed       bool              `json:"completed"`
	IsTemplate      bool              `json:"isTemplate"`
	CreatedAt       time.Time         `json:"createdAt"`
	Exercises       []SessionExercise `json:"exercises,omitempty"`
}

type SessionExercise struct {
	ID           int    `json:"id"`
	SessionID    int    `json:"sessionId"`
	ExerciseID   int    `json:"exerciseId"`
	ExerciseName string `json:"exerciseName,omitempty"`
	MuscleGroup  string `json:"muscleGroup,omitempty"`
	Order        int    `json:"order"`
	TargetSets   *int   `json:"targetSets,omitempty"`
	TargetReps   *int   `json:"targetReps,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Completed    bool   `json:"completed"`
	Sets         []Set  `json:"sets,omitempty"`
}

type Set struct {
	ID                int              `json:"id"`
	SessionExerciseID int              `json:"sessionExerciseId"`
	SetNumber         int              `json:"setNumber"`
	Weight            *decimal.Decimal `json:"weight,omitempty"`
	Reps              int              `json:"reps"`
	RPE               *int             `json:"rpe,omitempty"`
	IsWarmup          bool             `json:"isWarmup"`
	Completed         bool             `json:"completed"`
	CompletionTime    *time.Time       `json:"completionTime,omitempty"`
}

type NewSet struct {
	Weight    *decimal.Decimal `json:"weight"`
	Reps      int              `json:"reps"`
	RPE       *int             `json:"rpe"`
	IsWarmup  bool             `json:"isWarmup"`
	Completed *bool            `json:"completed"`
}

func (s NewSet) Validate() error {
	if s.Reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrInvalidSet)
	}
	if err := validateRPE(s.RPE); err != nil {
		return err
	}
	if s.Weight != nil && s.Weight.IsNegative() {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidSet)
	}
	return nil
}

// IsCompleted defaults to true, a logged set is normally a performed one.
func (s NewSet) IsCompleted() bool {
	return s.Completed == nil || *s.Completed
}

type SetUpdate struct {
	Reps      *int  `json:"reps"`
	RPE       *int  `json:"rpe"`
	Completed *bool `json:"completed"`
}

func (u SetUpdate) Validate() error {
	if u.Reps == nil && u.RPE == nil && u.Completed == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidSet)
	}
	if u.Reps != nil && *u.Reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrInvalidSet)
	}
	return validateRPE(u.RPE)
}

func validateRPE(rpe *int) error {
	if rpe != nil && (*rpe < 1 || *rpe > 10) {
		return fmt.Errorf("%w: rpe %d not in 1..10", ErrInvalidSet, *rpe)
	}
	return nil
}

type SessionsParams struct {
	UserID    int
	From      *time.Time
	To        *time.Time
	Completed *bool
	Page      int
	Size      int
}

// DurationMinutes is the whole minutes between start and end, nil when either
// is missing or end is not after start.
func DurationMinutes(start, end *time.Time) *int {
	if start == nil || end == nil || !end.After(*start) {
		return nil
	}
	minutes := int(end.Sub(*start).Minutes())
	return &minutes
}
