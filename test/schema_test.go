package test

const initSQL = `
CREATE TABLE public.users
(
    id            SERIAL PRIMARY KEY,
    username      VARCHAR     NOT NULL UNIQUE,
    email         VARCHAR     NOT NULL UNIQUE,
    password_hash VARCHAR     NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE public.exercise
(
    id           SERIAL PRIMARY KEY,
    name         VARCHAR  NOT NULL UNIQUE,
    type         VARCHAR  NOT NULL,
    muscle_group VARCHAR  NOT NULL DEFAULT '',
    equipment    VARCHAR  NOT NULL DEFAULT '',
    difficulty   SMALLINT NOT NULL DEFAULT 1 CHECK (difficulty BETWEEN 1 AND 5),
    description  TEXT     NOT NULL DEFAULT '',
    demo_link    VARCHAR  NOT NULL DEFAULT ''
);

CREATE TABLE public.workout_session
(
    id               SERIAL PRIMARY KEY,
    user_id          INTEGER      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    session_name     VARCHAR      NOT NULL DEFAULT '',
    session_date     DATE         NOT NULL,
    start_time       TIMESTAMPTZ,
    end_time         TIMESTAMPTZ,
    duration_minutes INTEGER,
    bodyweight       NUMERIC(6, 2),
    notes            TEXT         NOT NULL DEFAULT '',
    completed        BOOLEAN      NOT NULL DEFAULT FALSE,
    is_template      BOOLEAN      NOT NULL DEFAULT FALSE,
    created_at       TIMESTAMPTZ  NOT NULL DEFAULT now()
);
CREATE INDEX ix_workout_session_user_date ON public.workout_session (user_id, session_date);

CREATE TABLE public.session_exercise
(
    id             SERIAL PRIMARY KEY,
    session_id     INTEGER NOT NULL REFERENCES workout_session (id) ON DELETE CASCADE,
    exercise_id    INTEGER NOT NULL REFERENCES exercise (id),
    exercise_order INTEGER NOT NULL,
    target_sets    INTEGER,
    target_reps    INTEGER,
    notes          TEXT    NOT NULL DEFAULT '',
    completed      BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX ix_session_exercise_session ON public.session_exercise (session_id);

CREATE TABLE public.workout_set
(
    id                  SERIAL PRIMARY KEY,
    session_exercise_id INTEGER NOT NULL REFERENCES session_exercise (id) ON DELETE CASCADE,
    set_number          INTEGER NOT NULL,
    weight              NUMERIC(6, 2),
    reps                INTEGER NOT NULL,
    rpe                 SMALLINT CHECK (rpe BETWEEN 1 AND 10),
    is_warmup           BOOLEAN NOT NULL DEFAULT FALSE,
    completed           BOOLEAN NOT NULL DEFAULT TRUE,
    completion_time     TIMESTAMPTZ,
    UNIQUE (session_exercise_id, set_number)
);

CREATE TABLE public.data_validation
(
    id           SERIAL PRIMARY KEY,
    user_id      INTEGER       NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    set_id       INTEGER REFERENCES workout_set (id) ON DELETE SET NULL,
    exercise_id  INTEGER       NOT NULL REFERENCES exercise (id) ON DELETE CASCADE,
    input_weight NUMERIC(6, 2) NOT NULL,
    expected_max NUMERIC(6, 2),
    recent_avg   NUMERIC(6, 2),
    flagged_as   VARCHAR       NOT NULL,
    user_action  VARCHAR,
    created_at   TIMESTAMPTZ   NOT NULL DEFAULT now()
);
CREATE INDEX ix_data_validation_user ON public.data_validation (user_id, created_at);

CREATE TABLE public.personal_best
(
    id          SERIAL PRIMARY KEY,
    user_id     INTEGER       NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    exercise_id INTEGER       NOT NULL REFERENCES exercise (id) ON DELETE CASCADE,
    pr_type     VARCHAR       NOT NULL,
    weight      NUMERIC(6, 2) NOT NULL,
    reps        INTEGER       NOT NULL,
    pb_date     DATE          NOT NULL,
    previous_pr NUMERIC(6, 2),
    set_id      INTEGER REFERENCES workout_set (id) ON DELETE SET NULL,
    notes       TEXT          NOT NULL DEFAULT ''
);

CREATE TABLE public.progress
(
    id            SERIAL PRIMARY KEY,
    user_id       INTEGER        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    exercise_id   INTEGER        NOT NULL REFERENCES exercise (id) ON DELETE CASCADE,
    period_type   VARCHAR        NOT NULL,
    period_start  DATE           NOT NULL,
    max_weight    NUMERIC(6, 2)  NOT NULL,
    avg_weight    NUMERIC(6, 2)  NOT NULL,
    total_volume  NUMERIC(12, 2) NOT NULL,
    workout_count INTEGER        NOT NULL,
    UNIQUE (user_id, exercise_id, period_type, period_start)
);

CREATE TABLE public.goal
(
    id              SERIAL PRIMARY KEY,
    user_id         INTEGER        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    exercise_id     INTEGER REFERENCES exercise (id) ON DELETE SET NULL,
    goal_type       VARCHAR        NOT NULL,
    description     TEXT           NOT NULL DEFAULT '',
    target_value    NUMERIC(10, 2) NOT NULL,
    current_value   NUMERIC(10, 2) NOT NULL DEFAULT 0,
    unit            VARCHAR        NOT NULL DEFAULT '',
    start_date      DATE           NOT NULL,
    target_date     DATE,
    status          VARCHAR        NOT NULL DEFAULT 'active',
    completion_date DATE
);

CREATE TABLE public.body_stat
(
    id           SERIAL PRIMARY KEY,
    user_id      INTEGER       NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    log_date     DATE          NOT NULL,
    weight       NUMERIC(6, 2) NOT NULL,
    neck         NUMERIC(6, 2),
    waist        NUMERIC(6, 2),
    hips         NUMERIC(6, 2),
    body_fat_pct NUMERIC(5, 2),
    notes        TEXT          NOT NULL DEFAULT ''
);
CREATE INDEX ix_body_stat_user_date ON public.body_stat (user_id, log_date);
`
