package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutware/internal/db"
	"github.com/2beens/workoutware/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// Repo reads baselines and stores validation outcomes. It works on a pool or
// inside a caller's transaction.
type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// LoadBaseline computes previous max and recent average over baseline rows:
// completed, non warm-up sets with a weight, from completed non-template sessions.
func (r *Repo) LoadBaseline(ctx context.Context, userID, exerciseID int, recentSince time.Time) (_ Baseline, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.validation.baseline")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	var maxWeight, avgAll, avgRecent *decimal.Decimal
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				MAX(s.weight),
				AVG(s.weight),
				AVG(s.weight) FILTER (WHERE ws.session_date >= $3::date)
			FROM workout_set s
			JOIN session_exercise se ON se.id = s.session_exercise_id
			JOIN workout_session ws ON ws.id = se.session_id
			WHERE ws.user_id = $1
				AND se.exercise_id = $2
				AND ws.is_template = FALSE
				AND ws.completed = TRUE
				AND s.completed = TRUE
				AND s.is_warmup = FALSE
				AND s.weight IS NOT NULL;`,
		userID, exerciseID, recentSince,
	).Scan(&maxWeight, &avgAll, &avgRecent)
	if err != nil {
		return Baseline{}, fmt.Errorf("query baseline: %w", err)
	}

	return newBaseline(maxWeight, avgAll, avgRecent), nil
}

// newBaseline falls back to the all-time average when the recent window is empty.
func newBaseline(maxWeight, avgAll, avgRecent *decimal.Decimal) Baseline {
	b := Baseline{
		PreviousMax: maxWeight,
		RecentAvg:   avgRecent,
	}
	if b.RecentAvg == nil {
		b.RecentAvg = avgAll
	}
	return b
}

func (r *Repo) AddEvent(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.validation.event.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO data_validation
				(user_id, set_id, exercise_id, input_weight, expected_max, recent_avg, flagged_as, user_action, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		event.UserID, event.SetID, event.ExerciseID,
		event.InputWeight, event.ExpectedMax, event.RecentAvg,
		string(event.FlaggedAs), event.UserAction, event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("event.id", event.ID))
	span.SetAttributes(attribute.String("event.status", string(event.FlaggedAs)))

	return &event, nil
}

func (r *Repo) SetUserAction(ctx context.Context, userID, eventID int, action UserAction) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.validation.event.action")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("event.id", eventID))

	if !action.Valid() {
		return ErrInvalidUserAction
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE data_validation SET user_action = $1 WHERE id = $2 AND user_id = $3;`,
		string(action), eventID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repo) ListEvents(ctx context.Context, params EventsParams) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.validation.event.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.Int("exercise.id", params.ExerciseID))
	span.SetAttributes(attribute.String("status", string(params.Status)))

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, set_id, exercise_id, input_weight, expected_max,
				recent_avg, flagged_as, user_action, created_at
			FROM data_validation
			WHERE user_id = $1
				AND ($2::int = 0 OR exercise_id = $2)
				AND ($3::text = '' OR flagged_as = $3)
				AND ($4::boolean IS FALSE OR user_action IS NULL)
			ORDER BY created_at DESC, id DESC
			LIMIT $5;`,
		params.UserID, params.ExerciseID, string(params.Status), params.OnlyOpen, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var e Event
		var flaggedAs string
		var userAction *string
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.SetID, &e.ExerciseID, &e.InputWeight, &e.ExpectedMax,
			&e.RecentAvg, &flaggedAs, &userAction, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.FlaggedAs = Status(flaggedAs)
		if userAction != nil {
			a := UserAction(*userAction)
			e.UserAction = &a
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return events, nil
}

func (r *Repo) AddPersonalBest(ctx context.Context, pb PersonalBest) (_ *PersonalBest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.validation.pb.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if pb.PRType == "" {
		pb.PRType = PRTypeMaxWeight
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO personal_best
				(user_id, exercise_id, set_id, pr_type, weight, reps, pb_date, previous_pr, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		pb.UserID, pb.ExerciseID, pb.SetID, pb.PRType, pb.Weight, pb.Reps,
		pb.PBDate, pb.PreviousPR, pb.Notes,
	).Scan(&pb.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("pb.id", pb.ID))
	return &pb, nil
}

// ListPersonalBests returns the latest bests first. exerciseID 0 means all exercises.
func (r *Repo) ListPersonalBests(ctx context.Context, userID, exerciseID, limit int) (_ []PersonalBest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.validation.pb.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise_id, set_id, pr_type, weight, reps, pb_date, previous_pr, notes
			FROM personal_best
			WHERE user_id = $1 AND ($2::int = 0 OR exercise_id = $2)
			ORDER BY pb_date DESC, id DESC
			LIMIT $3;`,
		userID, exerciseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	pbs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PersonalBest, error) {
		var pb PersonalBest
		err := row.Scan(
			&pb.ID, &pb.UserID, &pb.ExerciseID, &pb.SetID, &pb.PRType, &pb.Weight, &pb.Reps, &pb.PBDate, &pb.PreviousPR, &pb.Notes,
		)
		return pb, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect personal bests: %w", err)
	}
	if pbs == nil {
		pbs = make([]PersonalBest, 0)
	}

	return pbs, nil
}
