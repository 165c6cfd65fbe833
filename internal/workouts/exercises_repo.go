package workouts

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

type ExercisesRepo struct {
	db *pgxpool.Pool
}

func NewExercisesRepo(db *pgxpool.Pool) *ExercisesRepo {
	return &ExercisesRepo{
		db: db,
	}
}

func (r *ExercisesRepo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise
				(name, type, muscle_group, equipment, difficulty, description, demo_link)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		exercise.Name, exercise.Type, exercise.MuscleGroup, exercise.Equipment,
		exercise.Difficulty, exercise.Description, exercise.DemoLink,
	).Scan(&exercise.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrDuplicateExercise
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

func (r *ExercisesRepo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var e Exercise
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, name, type, muscle_group, equipment, difficulty, description, demo_link
			FROM exercise
			WHERE id = $1;`,
		id,
	).Scan(&e.ID, &e.Name, &e.Type, &e.MuscleGroup, &e.Equipment, &e.Difficulty, &e.Description, &e.DemoLink)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *ExercisesRepo) List(ctx context.Context, filter ExerciseFilter) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", filter.MuscleGroup))
	span.SetAttributes(attribute.String("type", filter.Type))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, type, muscle_group, equipment, difficulty, description, demo_link
			FROM exercise
			WHERE ($1::text = '' OR muscle_group = $1)
				AND ($2::text = '' OR type = $2)
			ORDER BY muscle_group, name;`,
		filter.MuscleGroup, filter.Type,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Type, &e.MuscleGroup, &e.Equipment, &e.Difficulty, &e.Description, &e.DemoLink,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return exercises, nil
}

func (r *ExercisesRepo) Update(ctx context.Context, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE exercise
			SET name = $1, type = $2, muscle_group = $3, equipment = $4, difficulty = $5, description = $6, demo_link = $7
			WHERE id = $8;`,
		exercise.Name, exercise.Type, exercise.MuscleGroup, exercise.Equipment,
		exercise.Difficulty, exercise.Description, exercise.DemoLink, exercise.ID,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrDuplicateExercise
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

// Delete fails with ErrExerciseInUse while any session still references the exercise.
func (r *ExercisesRepo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
