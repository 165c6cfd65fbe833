package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const goalColumns = `id, user_id, exercise_id, goal_type, description, target_value, current_value,
	unit, start_date, target_date, status, completion_date`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanGoal(row pgx.Row) (*Goal, error) {
	var (
		g      Goal
		status string
	)
	if err := row.Scan(
		&g.ID, &g.UserID, &g.ExerciseID, &g.Type, &g.Description, &g.TargetValue, &g.CurrentValue,
		&g.Unit, &g.StartDate, &g.TargetDate, &status, &g.CompletionDate,
	); err != nil {
		return nil, err
	}
	g.Status = Status(status)
	g.ProgressPercent = ProgressPercent(g.CurrentValue, g.TargetValue)
	return &g, nil
}

func (r *Repo) Create(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	created, err := scanGoal(r.db.QueryRow(
		ctx,
		`INSERT INTO goal
				(user_id, exercise_id, goal_type, description, target_value, current_value, unit, start_date, target_date, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+goalColumns+`;`,
		goal.UserID, goal.ExerciseID, goal.Type, goal.Description,
		goal.TargetValue, goal.CurrentValue,
		goal.Unit, goal.StartDate, goal.TargetDate, string(StatusActive),
	))
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", created.ID))
	return created, nil
}

// List returns the user's goals, earliest deadline first. An empty status
// lists all of them.
func (r *Repo) List(ctx context.Context, userID int, status Status) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("status", string(status)))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+goalColumns+`
			FROM goal
			WHERE user_id = $1 AND ($2::text = '' OR status = $2)
			ORDER BY target_date ASC NULLS LAST, id DESC;`,
		userID, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	goals := make([]Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return goals, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	g, err := scanGoal(r.db.QueryRow(
		ctx,
		`SELECT `+goalColumns+` FROM goal WHERE id = $1 AND user_id = $2;`,
		id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Update sets the current value and/or the status. The completion date is
// only touched when the status changes.
func (r *Repo) Update(ctx context.Context, userID, id int, update GoalUpdate) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	g, err := scanGoal(r.db.QueryRow(
		ctx,
		`
			UPDATE goal
			SET current_value = COALESCE($3::numeric, current_value),
				status = CASE WHEN $4::text = '' THEN status ELSE $4 END,
				completion_date = CASE WHEN $4::text = '' THEN completion_date ELSE $5::date END
			WHERE id = $1 AND user_id = $2
			RETURNING `+goalColumns+`;`,
		id, userID, update.CurrentValue, string(update.Status), update.CompletionDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM goal WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}
