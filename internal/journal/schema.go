package journal

// SchemaSQL creates the tables the repo reads from.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS public.tag
(
    id    SERIAL PRIMARY KEY,
    name  VARCHAR NOT NULL UNIQUE,
    color VARCHAR NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS public.workout
(
    id              SERIAL PRIMARY KEY,
    type            VARCHAR     NOT NULL,
    start_time      TIMESTAMPTZ NOT NULL,
    training_volume VARCHAR,
    focus_level     INTEGER CHECK (focus_level BETWEEN 1 AND 5),
    mental_state    JSONB
);

CREATE INDEX IF NOT EXISTS ix_workout_start_time ON public.workout (start_time);

CREATE TABLE IF NOT EXISTS public.workout_tag
(
    workout_id INTEGER NOT NULL REFERENCES public.workout (id) ON DELETE CASCADE,
    tag_id     INTEGER NOT NULL REFERENCES public.tag (id) ON DELETE CASCADE,
    PRIMARY KEY (workout_id, tag_id)
);

CREATE TABLE IF NOT EXISTS public.calendar_event
(
    id              SERIAL PRIMARY KEY,
    type            VARCHAR NOT NULL,
    date            DATE    NOT NULL,
    trip_start_date DATE,
    trip_end_date   DATE
);

CREATE INDEX IF NOT EXISTS ix_calendar_event_date ON public.calendar_event (date);

CREATE TABLE IF NOT EXISTS public.fingerboard_test
(
    id   SERIAL PRIMARY KEY,
    date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS public.user_profile
(
    id                INTEGER PRIMARY KEY,
    cycle_settings    JSONB,
    reminder_settings JSONB
);
`
