package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/cragjournal/internal/cycle"
	"github.com/2beens/cragjournal/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// the journal is single user, its settings live in one profile row
const profileID = 1

var ErrProfileNotFound = errors.New("profile not found")

type WorkoutParams struct {
	From *time.Time
	To   *time.Time
}

type EventParams struct {
	Type *EventType
	From *time.Time
	To   *time.Time
}

// Snapshot is the full history the analytics and reminders work on.
type Snapshot struct {
	Workouts         []Workout         `json:"workouts"`
	Events           []Event           `json:"events"`
	Tags             []Tag             `json:"tags"`
	FingerboardTests []FingerboardTest `json:"fingerboardTests"`
	Profile          Profile           `json:"profile"`
}

// Repo is a read model over the journal tables. Writes are done by the journal UI.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListWorkouts(ctx context.Context, params WorkoutParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.journal.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			w.id, w.type, w.start_time, w.training_volume, w.focus_level, w.mental_state,
			COALESCE(
				json_agg(json_build_object('id', t.id, 'name', t.name)) FILTER (WHERE t.id IS NOT NULL),
				'[]'
			) AS tags
		FROM workout w
			LEFT JOIN workout_tag wt ON wt.workout_id = w.id
			LEFT JOIN tag t ON t.id = wt.tag_id
		WHERE ($1::timestamptz IS NULL OR w.start_time >= $1)
		  AND ($2::timestamptz IS NULL OR w.start_time <= $2)
		GROUP BY w.id
		ORDER BY w.start_time DESC;
	`, params.From, params.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var (
			w           Workout
			volume      *string
			mentalState []byte
			tagsJson    []byte
		)
		if err := rows.Scan(
			&w.ID, &w.Type, &w.StartTime, &volume, &w.FocusLevel, &mentalState, &tagsJson,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if volume != nil {
			tv := TrainingVolume(*volume)
			w.TrainingVolume = &tv
		}
		if len(mentalState) > 0 {
			w.MentalState = &MentalState{}
			if err := json.Unmarshal(mentalState, w.MentalState); err != nil {
				return nil, fmt.Errorf("unmarshal mental state of workout %d: %w", w.ID, err)
			}
		}
		if err := json.Unmarshal(tagsJson, &w.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags of workout %d: %w", w.ID, err)
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(workouts)))
	return workouts, nil
}

func (r *Repo) ListTags(ctx context.Context) (_ []Tag, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.journal.tags.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name, color FROM tag ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]Tag, 0)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (r *Repo) ListEvents(ctx context.Context, params EventParams) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.journal.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.Type != nil {
		span.SetAttributes(attribute.String("type", params.Type.String()))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, type, date, trip_start_date, trip_end_date
		FROM calendar_event
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::date IS NULL OR date >= $2)
		  AND ($3::date IS NULL OR date <= $3)
		ORDER BY date DESC;
	`, params.Type, params.From, params.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Type, &e.Date, &e.TripStartDate, &e.TripEndDate); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *Repo) ListFingerboardTests(ctx context.Context) (_ []FingerboardTest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.journal.fingerboard-tests.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, date FROM fingerboard_test ORDER BY date DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tests := make([]FingerboardTest, 0)
	for rows.Next() {
		var ft FingerboardTest
		if err := rows.Scan(&ft.ID, &ft.Date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		tests = append(tests, ft)
	}

	return tests, rows.Err()
}

// GetProfile returns the stored settings, ErrProfileNotFound when the profile row is missing.
func (r *Repo) GetProfile(ctx context.Context) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.journal.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var cycleJson, remindersJson []byte
	err = r.db.QueryRow(ctx, `
		SELECT cycle_settings, reminder_settings
		FROM user_profile
		WHERE id = $1;
	`, profileID).Scan(&cycleJson, &remindersJson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile := &Profile{
		Reminders: DefaultReminderSettings(),
	}
	if len(cycleJson) > 0 {
		settings := &cycle.Settings{}
		if err := json.Unmarshal(cycleJson, settings); err != nil {
			return nil, fmt.Errorf("unmarshal cycle settings: %w", err)
		}
		// invalid settings behave as disabled cycle tracking
		if err := settings.Validate(); err == nil {
			profile.Cycle = settings
		}
	}
	if len(remindersJson) > 0 {
		if err := json.Unmarshal(remindersJson, &profile.Reminders); err != nil {
			return nil, fmt.Errorf("unmarshal reminder settings: %w", err)
		}
	}

	return profile, nil
}

// Snapshot loads the whole history. A missing profile yields default settings.
func (r *Repo) Snapshot(ctx context.Context) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.journal.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := r.ListWorkouts(ctx, WorkoutParams{})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	events, err := r.ListEvents(ctx, EventParams{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	tags, err := r.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tests, err := r.ListFingerboardTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fingerboard tests: %w", err)
	}

	profile, err := r.GetProfile(ctx)
	if errors.Is(err, ErrProfileNotFound) {
		profile = &Profile{Reminders: DefaultReminderSettings()}
	} else if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &Snapshot{
		Workouts:         workouts,
		Events:           events,
		Tags:             tags,
		FingerboardTests: tests,
		Profile:          *profile,
	}, nil
}
