package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutware/internal/db"

	"github.com/shopspring/decimal"
)

const DefaultRecentWindowDays = 30

// Validator loads a baseline and classifies a weight against it. It takes the
// querier per call so that LogSet can run it inside its own transaction.
type Validator struct {
	thresholds       Thresholds
	recentWindowDays int
	now              func() time.Time
}

func NewValidator(thresholds Thresholds, recentWindowDays int) *Validator {
	if recentWindowDays <= 0 {
		recentWindowDays = DefaultRecentWindowDays
	}
	return &Validator{
		thresholds:       thresholds,
		recentWindowDays: recentWindowDays,
		now:              time.Now,
	}
}

func (v *Validator) Thresholds() Thresholds {
	return v.thresholds
}

// RecentSince is the first session date inside the recent window.
func (v *Validator) RecentSince() time.Time {
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -v.recentWindowDays)
}

func (v *Validator) Evaluate(ctx context.Context, q db.Querier, userID, exerciseID int, weight decimal.Decimal) (Result, error) {
	baseline, err := NewRepo(q).LoadBaseline(ctx, userID, exerciseID, v.RecentSince())
	if err != nil {
		return Result{}, fmt.Errorf("load baseline: %w", err)
	}
	return Classify(weight, baseline, v.thresholds), nil
}

// Outcome is a classified set that was just inserted.
type Outcome struct {
	UserID     int
	ExerciseID int
	SetID      int
	Weight     decimal.Decimal
	Reps       int
	Result     Result
}

// Record writes the audit row and, for a PR, the personal best.
func (v *Validator) Record(ctx context.Context, q db.Querier, outcome Outcome) error {
	repo := NewRepo(q)
	setID := outcome.SetID
	now := v.now()

	if _, err := repo.AddEvent(ctx, Event{
		UserID:      outcome.UserID,
		SetID:       &setID,
		ExerciseID:  outcome.ExerciseID,
		InputWeight: outcome.Weight,
		ExpectedMax: outcome.Result.PreviousMax,
		RecentAvg:   outcome.Result.RecentAvg,
		FlaggedAs:   outcome.Result.Status,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("add validation event: %w", err)
	}

	if !outcome.Result.IsPR {
		return nil
	}

	if _, err := repo.AddPersonalBest(ctx, PersonalBest{
		UserID:     outcome.UserID,
		ExerciseID: outcome.ExerciseID,
		SetID:      &setID,
		PRType:     PRTypeMaxWeight,
		Weight:     outcome.Weight,
		Reps:       outcome.Reps,
		PBDate:     now,
		PreviousPR: outcome.Result.PreviousMax,
	}); err != nil {
		return fmt.Errorf("add personal best: %w", err)
	}

	return nil
}
