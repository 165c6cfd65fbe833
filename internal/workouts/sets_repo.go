package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/workoutware/internal/db"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/internal/validation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// SetEvaluator classifies a weight and records the outcome. Both calls get the
// transaction LogSet runs in.
type SetEvaluator interface {
	Evaluate(ctx context.Context, q db.Querier, userID, exerciseID int, weight decimal.Decimal) (validation.Result, error)
	Record(ctx context.Context, q db.Querier, outcome validation.Outcome) error
}

var _ SetEvaluator = (*validation.Validator)(nil)

type LoggedSet struct {
	Set
	ExerciseID int                `json:"exerciseId"`
	Validation *validation.Result `json:"validation,omitempty"`
}

func setColumns(alias string) string {
	cols := []string{
		"id", "session_exercise_id", "set_number", "weight", "reps",
		"rpe", "is_warmup", "completed", "completion_time",
	}
	for i := range cols {
		cols[i] = alias + "." + cols[i]
	}
	return strings.Join(cols, ", ")
}

func scanSet(row pgx.Row) (Set, error) {
	var s Set
	err := row.Scan(
		&s.ID, &s.SessionExerciseID, &s.SetNumber, &s.Weight, &s.Reps,
		&s.RPE, &s.IsWarmup, &s.Completed, &s.CompletionTime,
	)
	return s, err
}

type SetsRepo struct {
	db *pgxpool.Pool
}

func NewSetsRepo(db *pgxpool.Pool) *SetsRepo {
	return &SetsRepo{
		db: db,
	}
}

// LogSet stores a set and, when it has a load and is not a warm-up, classifies
// it against the baseline as it was before this set. Everything happens in one
// transaction; the session exercise row is locked so set numbers stay unique.
func (r *SetsRepo) LogSet(
	ctx context.Context,
	userID, sessionExerciseID int,
	newSet NewSet,
	evaluator SetEvaluator,
) (_ *LoggedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("session_exercise.id", sessionExerciseID))

	if err := newSet.Validate(); err != nil {
		return nil, err
	}

	logged := &LoggedSet{}
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var exerciseID int
		var isTemplate bool
		err := tx.QueryRow(
			ctx,
			`
				SELECT se.exercise_id, ws.is_template
				FROM session_exercise se
				JOIN workout_session ws ON ws.id = se.session_id
				WHERE se.id = $1 AND ws.user_id = $2
				FOR UPDATE OF se;`,
			sessionExerciseID, userID,
		).Scan(&exerciseID, &isTemplate)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionExerciseNotFound
		}
		if err != nil {
			return fmt.Errorf("check session exercise: %w", err)
		}
		logged.ExerciseID = exerciseID

		classify := !isTemplate && validation.Classifiable(newSet.Weight, newSet.IsWarmup)
		var result validation.Result
		if classify {
			result, err = evaluator.Evaluate(ctx, tx, userID, exerciseID, *newSet.Weight)
			if err != nil {
				return fmt.Errorf("evaluate set: %w", err)
			}
		}

		var completionTime *time.Time
		if newSet.IsCompleted() {
			now := time.Now()
			completionTime = &now
		}

		logged.Set, err = scanSet(tx.QueryRow(
			ctx,
			`
				INSERT INTO workout_set AS s
					(session_exercise_id, set_number, weight, reps, rpe, is_warmup, completed, completion_time)
				SELECT $1, COALESCE(MAX(set_number), 0) + 1, $2, $3, $4, $5, $6, $7
				FROM workout_set WHERE session_exercise_id = $1
				RETURNING `+setColumns("s")+`;`,
			sessionExerciseID, newSet.Weight, newSet.Reps, newSet.RPE,
			newSet.IsWarmup, newSet.IsCompleted(), completionTime,
		))
		if err != nil {
			return fmt.Errorf("insert set: %w", err)
		}

		if !classify {
			return nil
		}

		if err := evaluator.Record(ctx, tx, validation.Outcome{
			UserID:     userID,
			ExerciseID: exerciseID,
			SetID:      logged.ID,
			Weight:     *newSet.Weight,
			Reps:       newSet.Reps,
			Result:     result,
		}); err != nil {
			return fmt.Errorf("record validation: %w", err)
		}
		logged.Validation = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("set.id", logged.ID))
	if logged.Validation != nil {
		span.SetAttributes(attribute.String("set.status", string(logged.Validation.Status)))
	}

	return logged, nil
}

func (r *SetsRepo) UpdateSet(ctx context.Context, userID, setID int, update SetUpdate) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set.id", setID))

	if err := update.Validate(); err != nil {
		return nil, err
	}

	set, err := scanSet(r.db.QueryRow(
		ctx,
		`
			UPDATE workout_set AS s
			SET reps = COALESCE($3::int, s.reps),
				rpe = COALESCE($4::int, s.rpe),
				completed = COALESCE($5::boolean, s.completed),
				completion_time = CASE
					WHEN COALESCE($5::boolean, s.completed) AND s.completion_time IS NULL THEN NOW()
					ELSE s.completion_time
				END
			FROM session_exercise se, workout_session ws
			WHERE s.id = $1
				AND se.id = s.session_exercise_id
				AND ws.id = se.session_id
				AND ws.user_id = $2
			RETURNING `+setColumns("s")+`;`,
		setID, userID, update.Reps, update.RPE, update.Completed,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, err
	}

	return &set, nil
}

func (r *SetsRepo) DeleteSet(ctx context.Context, userID, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set.id", setID))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM workout_set s
			USING session_exercise se, workout_session ws
			WHERE s.id = $1
				AND se.id = s.session_exercise_id
				AND ws.id = se.session_id
				AND ws.user_id = $2;`,
		setID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}
