package bodystats

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutware/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, stat Stat) (_ *Stat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodystats.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO body_stat
				(user_id, log_date, weight, neck, waist, hips, body_fat_pct, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		stat.UserID, stat.LogDate, stat.Weight,
		stat.Neck, stat.Waist, stat.Hips, stat.BodyFatPct, stat.Notes,
	).Scan(&stat.ID)
	if err != nil {
		return nil, fmt.Errorf("insert body stat: %w", err)
	}

	span.SetAttributes(attribute.Int("body_stat.id", stat.ID))
	return &stat, nil
}

// List returns the user's entries newest first, optionally bounded by
// from/to (inclusive).
func (r *Repo) List(ctx context.Context, userID int, from, to *time.Time) (_ []Stat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodystats.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, log_date, weight, neck, waist, hips, body_fat_pct, notes
			FROM body_stat
			WHERE user_id = $1
				AND ($2::date IS NULL OR log_date >= $2)
				AND ($3::date IS NULL OR log_date <= $3)
			ORDER BY log_date DESC, id DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Stat, error) {
		var s Stat
		err := row.Scan(&s.ID, &s.UserID, &s.LogDate, &s.Weight, &s.Neck, &s.Waist, &s.Hips, &s.BodyFatPct, &s.Notes)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect body stats: %w", err)
	}

	return stats, nil
}

// WeightPoints returns bodyweight readings oldest first.
func (r *Repo) WeightPoints(ctx context.Context, userID int, from, to *time.Time) (_ []TrendPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodystats.weight_points")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT log_date, weight
			FROM body_stat
			WHERE user_id = $1
				AND ($2::date IS NULL OR log_date >= $2)
				AND ($3::date IS NULL OR log_date <= $3)
			ORDER BY log_date ASC, id ASC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TrendPoint, error) {
		var p TrendPoint
		err := row.Scan(&p.Date, &p.Weight)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect weight points: %w", err)
	}

	return points, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodystats.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM body_stat WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStatNotFound
	}
	return nil
}
