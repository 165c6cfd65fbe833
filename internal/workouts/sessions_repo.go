package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/workoutware/internal/db"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const sessionColumns = `id, user_id, session_name, session_date, start_time, end_time, duration_minutes,
	bodyweight, notes, completed, is_template, created_at`

type SessionsRepo struct {
	db *pgxpool.Pool
}

func NewSessionsRepo(db *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{
		db: db,
	}
}

func scanSession(row pgx.Row) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.SessionDate, &s.StartTime, &s.EndTime, &s.DurationMinutes,
		&s.Bodyweight, &s.Notes, &s.Completed, &s.IsTemplate, &s.CreatedAt,
	)
	return s, err
}

func (r *SessionsRepo) Create(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", session.UserID))

	created, err := insertSession(ctx, r.db, session)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("session.id", created.ID))
	return created, nil
}

func insertSession(ctx context.Context, q db.Querier, session Session) (*Session, error) {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	created, err := scanSession(q.QueryRow(
		ctx,
		`INSERT INTO workout_session
				(user_id, session_name, session_date, start_time, end_time, duration_minutes, bodyweight, notes, completed, is_template, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+sessionColumns+`;`,
		session.UserID, session.Name, session.SessionDate, session.StartTime, session.EndTime, session.DurationMinutes,
		session.Bodyweight, session.Notes, session.Completed, session.IsTemplate, session.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &created, nil
}

// List returns one page of the user's non-template sessions, newest first, and the total count.
func (r *SessionsRepo) List(ctx context.Context, params SessionsParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	const filter = `
		WHERE user_id = $1
			AND is_template = FALSE
			AND ($2::date IS NULL OR session_date >= $2)
			AND ($3::date IS NULL OR session_date <= $3)
			AND ($4::boolean IS NULL OR completed = $4)`

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_session`+filter+`;`,
		params.UserID, params.From, params.To, params.Completed,
	).Scan(&total); err != nil {
		return nil, -1, fmt.Errorf("count sessions: %w", err)
	}
	span.SetAttributes(attribute.Int("count_all", total))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_session`+filter+`
		ORDER BY session_date DESC, id DESC
		LIMIT $5 OFFSET $6;`,
		params.UserID, params.From, params.To, params.Completed,
		params.Size, (params.Page-1)*params.Size,
	)
	if err != nil {
		return nil, -1, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		return scanSession(row)
	})
	if err != nil {
		return nil, -1, fmt.Errorf("collect sessions: %w", err)
	}
	if sessions == nil {
		sessions = make([]Session, 0)
	}

	return sessions, total, nil
}

// Get returns the session with its exercises and their sets.
func (r *SessionsRepo) Get(ctx context.Context, userID, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("session.id", id))

	session, err := scanSession(r.db.QueryRow(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_session WHERE id = $1 AND user_id = $2;`,
		id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	exRows, err := r.db.Query(
		ctx,
		`
			SELECT
				se.id, se.session_id, se.exercise_id, e.name, e.muscle_group, se.exercise_order,
				se.target_sets, se.target_reps, se.notes, se.completed
			FROM session_exercise se
			JOIN exercise e ON e.id = se.exercise_id
			WHERE se.session_id = $1
			ORDER BY se.exercise_order, se.id;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query session exercises: %w", err)
	}
	sessionExercises, err := pgx.CollectRows(exRows, func(row pgx.CollectableRow) (SessionExercise, error) {
		var se SessionExercise
		err := row.Scan(
			&se.ID, &se.SessionID, &se.ExerciseID, &se.ExerciseName, &se.MuscleGroup, &se.Order,
			&se.TargetSets, &se.TargetReps, &se.Notes, &se.Completed,
		)
		return se, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect session exercises: %w", err)
	}

	setRows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns("s")+`
			FROM workout_set s
			JOIN session_exercise se ON se.id = s.session_exercise_id
			WHERE se.session_id = $1
			ORDER BY s.session_exercise_id, s.set_number;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	sets, err := pgx.CollectRows(setRows, func(row pgx.CollectableRow) (Set, error) {
		return scanSet(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect sets: %w", err)
	}

	byID := make(map[int]int, len(sessionExercises))
	for i, se := range sessionExercises {
		byID[se.ID] = i
	}
	for _, s := range sets {
		if i, ok := byID[s.SessionExerciseID]; ok {
			sessionExercises[i].Sets = append(sessionExercises[i].Sets, s)
		}
	}
	session.Exercises = sessionExercises

	return &session, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_session WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Complete marks the session done. Start and end replace the stored ones only
// when given; the duration is derived from whatever ends up stored.
func (r *SessionsRepo) Complete(ctx context.Context, userID, id int, start, end *time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", id))

	session, err := scanSession(r.db.QueryRow(
		ctx,
		`
			UPDATE workout_session
			SET completed = TRUE,
				start_time = COALESCE($3::timestamp, start_time),
				end_time = COALESCE($4::timestamp, end_time),
				duration_minutes = CASE
					WHEN COALESCE($4::timestamp, end_time) > COALESCE($3::timestamp, start_time)
					THEN FLOOR(EXTRACT(EPOCH FROM (COALESCE($4::timestamp, end_time) - COALESCE($3::timestamp, start_time))) / 60)::int
					ELSE duration_minutes
				END
			WHERE id = $1 AND user_id = $2 AND is_template = FALSE
			RETURNING `+sessionColumns+`;`,
		id, userID, start, end,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// copySessionExercises copies the exercises of one session into another. A
// missing target falls back to what was actually done in the source.
func copySessionExercises(ctx context.Context, q db.Querier, fromSessionID, toSessionID int) (int64, error) {
	tag, err := q.Exec(
		ctx,
		`
			INSERT INTO session_exercise (session_id, exercise_id, exercise_order, target_sets, target_reps, notes)
			SELECT
				$2, se.exercise_id, se.exercise_order,
				COALESCE(se.target_sets, (
					SELECT NULLIF(COUNT(*), 0)::int FROM workout_set s
					WHERE s.session_exercise_id = se.id AND s.is_warmup = FALSE
				)),
				COALESCE(se.target_reps, (
					SELECT MAX(s.reps) FROM workout_set s
					WHERE s.session_exercise_id = se.id AND s.is_warmup = FALSE
				)),
				se.notes
			FROM session_exercise se
			WHERE se.session_id = $1
			ORDER BY se.exercise_order, se.id;`,
		fromSessionID, toSessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("copy session exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionsRepo) SaveAsTemplate(ctx context.Context, userID, id int, name string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.template.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", id))

	var template *Session
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		source, err := scanSession(tx.QueryRow(
			ctx,
			`SELECT `+sessionColumns+` FROM workout_session WHERE id = $1 AND user_id = $2;`,
			id, userID,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		if name == "" {
			name = source.Name
		}
		template, err = insertSession(ctx, tx, Session{
			UserID:      userID,
			Name:        name,
			SessionDate: source.SessionDate,
			Notes:       source.Notes,
			IsTemplate:  true,
		})
		if err != nil {
			return err
		}

		copied, err := copySessionExercises(ctx, tx, source.ID, template.ID)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int64("exercises.copied", copied))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return template, nil
}

func (r *SessionsRepo) ListTemplates(ctx context.Context, userID int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.template.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_session WHERE user_id = $1 AND is_template = TRUE ORDER BY session_name, id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	templates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		return scanSession(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect templates: %w", err)
	}
	if templates == nil {
		templates = make([]Session, 0)
	}

	return templates, nil
}

// StartFromTemplate creates a new, not yet completed session for date, seeded
// with the exercises of the template.
func (r *SessionsRepo) StartFromTemplate(ctx context.Context, userID, templateID int, date time.Time, name string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.template.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	var session *Session
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		template, err := scanSession(tx.QueryRow(
			ctx,
			`SELECT `+sessionColumns+` FROM workout_session WHERE id = $1 AND user_id = $2 AND is_template = TRUE;`,
			templateID, userID,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTemplateNotFound
		}
		if err != nil {
			return err
		}

		if name == "" {
			name = template.Name
		}
		session, err = insertSession(ctx, tx, Session{
			UserID:      userID,
			Name:        name,
			SessionDate: date,
			Notes:       template.Notes,
		})
		if err != nil {
			return err
		}

		copied, err := copySessionExercises(ctx, tx, template.ID, session.ID)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int64("exercises.copied", copied))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// AddExercise appends an exercise at the end of the session.
func (r *SessionsRepo) AddExercise(ctx context.Context, userID, sessionID int, se SessionExercise) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.exercise.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))
	span.SetAttributes(attribute.Int("exercise.id", se.ExerciseID))

	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var owned int
		err := tx.QueryRow(
			ctx,
			`SELECT id FROM workout_session WHERE id = $1 AND user_id = $2 FOR UPDATE;`,
			sessionID, userID,
		).Scan(&owned)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		err = tx.QueryRow(
			ctx,
			`
				INSERT INTO session_exercise (session_id, exercise_id, exercise_order, target_sets, target_reps, notes)
				SELECT $1, $2, COALESCE(MAX(exercise_order), 0) + 1, $3, $4, $5
				FROM session_exercise WHERE session_id = $1
				RETURNING id, exercise_order;`,
			sessionID, se.ExerciseID, se.TargetSets, se.TargetReps, se.Notes,
		).Scan(&se.ID, &se.Order)
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	se.SessionID = sessionID
	return &se, nil
}

func (r *SessionsRepo) RemoveExercise(ctx context.Context, userID, sessionID, sessionExerciseID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.exercise.remove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))
	span.SetAttributes(attribute.Int("session_exercise.id", sessionExerciseID))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM session_exercise se
			USING workout_session ws
			WHERE se.id = $1 AND se.session_id = $2 AND ws.id = se.session_id AND ws.user_id = $3;`,
		sessionExerciseID, sessionID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionExerciseNotFound
	}
	return nil
}
