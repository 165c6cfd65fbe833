package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutware/internal/db"
	"github.com/2beens/workoutware/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// baselineFilter selects the sets that count towards progress.
const baselineFilter = `
	ws.is_template = FALSE
	AND ws.completed = TRUE
	AND s.completed = TRUE
	AND s.is_warmup = FALSE
	AND s.weight IS NOT NULL`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SetRows reads the baseline sets of a user. Zero exerciseID means all
// exercises, nil bounds are open.
func (r *Repo) SetRows(ctx context.Context, userID, exerciseID int, from, to *time.Time) (_ []SetRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.setRows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	return querySetRows(ctx, r.db, userID, exerciseID, from, to)
}

func querySetRows(ctx context.Context, q db.Querier, userID, exerciseID int, from, to *time.Time) ([]SetRow, error) {
	rows, err := q.Query(
		ctx,
		`
			SELECT ws.id, se.exercise_id, ws.session_date, s.weight, s.reps
			FROM workout_set s
			JOIN session_exercise se ON se.id = s.session_exercise_id
			JOIN workout_session ws ON ws.id = se.session_id
			WHERE ws.user_id = $1
				AND ($2::int = 0 OR se.exercise_id = $2)
				AND ($3::date IS NULL OR ws.session_date >= $3::date)
				AND ($4::date IS NULL OR ws.session_date <= $4::date)
				AND `+baselineFilter+`
			ORDER BY ws.session_date, s.id;`,
		userID, exerciseID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query set rows: %w", err)
	}
	defer rows.Close()

	setRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SetRow, error) {
		var sr SetRow
		err := row.Scan(&sr.SessionID, &sr.ExerciseID, &sr.SessionDate, &sr.Weight, &sr.Reps)
		return sr, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect set rows: %w", err)
	}

	return setRows, nil
}

// ReplaceEntries deletes the stored rows of the user for the given periods and
// writes the new ones, all in one transaction.
func (r *Repo) ReplaceEntries(ctx context.Context, userID int, periods []Period, build func(rows []SetRow) []Entry) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	periodNames := make([]string, len(periods))
	for i, p := range periods {
		periodNames[i] = string(p)
	}

	written := 0
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`DELETE FROM progress WHERE user_id = $1 AND period_type = ANY($2::text[]);`,
			userID, periodNames,
		); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}

		setRows, err := querySetRows(ctx, tx, userID, 0, nil, nil)
		if err != nil {
			return err
		}

		entries := build(setRows)
		if len(entries) == 0 {
			return nil
		}

		copied, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"progress"},
			[]string{"user_id", "exercise_id", "period_type", "period_start", "max_weight", "avg_weight", "total_volume", "workout_count"},
			pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
				e := entries[i]
				return []any{
					e.UserID, e.ExerciseID, string(e.PeriodType), e.PeriodStart,
					e.MaxWeight, e.AvgWeight, e.TotalVolume, e.WorkoutCount,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy progress: %w", err)
		}
		written = int(copied)
		return nil
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("progress.written", written))
	return written, nil
}

func (r *Repo) ListEntries(ctx context.Context, userID, exerciseID int, period Period) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise_id, period_type, period_start,
				max_weight, avg_weight, total_volume, workout_count
			FROM progress
			WHERE user_id = $1
				AND ($2::int = 0 OR exercise_id = $2)
				AND period_type = $3
			ORDER BY exercise_id, period_start;`,
		userID, exerciseID, string(period),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		var periodType string
		if err := row.Scan(
			&e.ID, &e.UserID, &e.ExerciseID, &periodType, &e.PeriodStart,
			&e.MaxWeight, &e.AvgWeight, &e.TotalVolume, &e.WorkoutCount,
		); err != nil {
			return Entry{}, err
		}
		e.PeriodType = Period(periodType)
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect progress: %w", err)
	}
	if entries == nil {
		entries = make([]Entry, 0)
	}

	return entries, nil
}

func (r *Repo) UserIDs(ctx context.Context) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.userIds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id FROM users ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (r *Repo) ExerciseNames(ctx context.Context) (_ map[int]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.exerciseNames")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM exercise;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan exercise name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (r *Repo) MuscleGroups(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.muscleGroups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT muscle_group FROM exercise WHERE muscle_group <> '' ORDER BY muscle_group;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// MuscleGroupCounts counts session exercises per muscle group in completed,
// non-template sessions since the given day.
func (r *Repo) MuscleGroupCounts(ctx context.Context, userID int, since time.Time) (_ map[string]int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.muscleGroupCounts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT e.muscle_group, COUNT(*)
			FROM session_exercise se
			JOIN workout_session ws ON ws.id = se.session_id
			JOIN exercise e ON e.id = se.exercise_id
			WHERE ws.user_id = $1
				AND ws.completed = TRUE
				AND ws.is_template = FALSE
				AND ws.session_date >= $2::date
			GROUP BY e.muscle_group;`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var group string
		var count int
		if err := rows.Scan(&group, &count); err != nil {
			return nil, fmt.Errorf("scan muscle group count: %w", err)
		}
		counts[group] = count
	}
	return counts, rows.Err()
}

// CompletedSessionDays returns the distinct days with a completed session,
// newest first.
func (r *Repo) CompletedSessionDays(ctx context.Context, userID int) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.sessionDays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT DISTINCT session_date
			FROM workout_session
			WHERE user_id = $1 AND completed = TRUE AND is_template = FALSE
			ORDER BY session_date DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[time.Time])
}

// CountCompleted counts completed sessions, since the given day when set.
func (r *Repo) CountCompleted(ctx context.Context, userID int, since *time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.countCompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(
		ctx,
		`
			SELECT COUNT(*) FROM workout_session
			WHERE user_id = $1 AND completed = TRUE AND is_template = FALSE
				AND ($2::date IS NULL OR session_date >= $2::date);`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed: %w", err)
	}
	return count, nil
}

type ExerciseVolume struct {
	ExerciseID  int             `json:"exerciseId"`
	Name        string          `json:"name"`
	MuscleGroup string          `json:"muscleGroup"`
	TotalVolume decimal.Decimal `json:"totalVolume"`
}

func (r *Repo) TopExercisesByVolume(ctx context.Context, userID, limit int) (_ []ExerciseVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.topExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT e.id, e.name, e.muscle_group, SUM(s.weight * s.reps) AS volume
			FROM workout_set s
			JOIN session_exercise se ON se.id = s.session_exercise_id
			JOIN workout_session ws ON ws.id = se.session_id
			JOIN exercise e ON e.id = se.exercise_id
			WHERE ws.user_id = $1 AND `+baselineFilter+`
			GROUP BY e.id, e.name, e.muscle_group
			ORDER BY volume DESC, e.id
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	top, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ExerciseVolume])
	if err != nil {
		return nil, fmt.Errorf("collect top exercises: %w", err)
	}
	return top, nil
}

type ExerciseSuggestion struct {
	ExerciseID  int    `json:"exerciseId"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

// NotDoneSince lists catalog exercises the user has no session exercise for
// since the given day.
func (r *Repo) NotDoneSince(ctx context.Context, userID int, since time.Time, limit int) (_ []ExerciseSuggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.notDoneSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT e.id, e.name, e.muscle_group
			FROM exercise e
			WHERE NOT EXISTS (
				SELECT 1 FROM session_exercise se
				JOIN workout_session ws ON ws.id = se.session_id
				WHERE se.exercise_id = e.id
					AND ws.user_id = $1
					AND ws.is_template = FALSE
					AND ws.session_date >= $2::date
			)
			ORDER BY e.muscle_group, e.name
			LIMIT $3;`,
		userID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[ExerciseSuggestion])
}
