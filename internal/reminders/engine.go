package reminders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/notifications"
	"github.com/2beens/cragjournal/internal/telemetry/metrics"
	"github.com/2beens/cragjournal/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	FamilyCycle      = "cycle"
	FamilyInactivity = "inactivity"
	FamilyActivity   = "activity"
	FamilyRetest     = "retest"
)

// DataProvider gives the engine a fresh view of the journal on every run.
type DataProvider interface {
	Snapshot(ctx context.Context) (*journal.Snapshot, error)
}

// Engine runs the reminder families against the current journal data.
type Engine struct {
	provider       DataProvider
	store          notificationStore
	metricsManager *metrics.Manager
}

func NewEngine(provider DataProvider, store notificationStore, metricsManager *metrics.Manager) *Engine {
	return &Engine{
		provider:       provider,
		store:          store,
		metricsManager: metricsManager,
	}
}

func (e *Engine) RunCycle(ctx context.Context, now time.Time) error {
	return e.run(ctx, FamilyCycle, now, func(snapshot *journal.Snapshot) ([]notifications.Record, error) {
		return ProcessCycle(ctx, e.store, snapshot.Profile.Cycle, snapshot.Profile.Reminders.Cycle, now)
	})
}

func (e *Engine) RunInactivity(ctx context.Context, now time.Time) error {
	return e.run(ctx, FamilyInactivity, now, func(snapshot *journal.Snapshot) ([]notifications.Record, error) {
		return ProcessInactivity(ctx, e.store, snapshot.Workouts, snapshot.Profile.Reminders.Inactivity, now)
	})
}

func (e *Engine) RunActivity(ctx context.Context, now time.Time) error {
	return e.run(ctx, FamilyActivity, now, func(snapshot *journal.Snapshot) ([]notifications.Record, error) {
		return ProcessActivity(ctx, e.store, snapshot.Workouts, snapshot.Profile.Reminders.Activity, now)
	})
}

func (e *Engine) RunRetest(ctx context.Context, now time.Time) error {
	return e.run(ctx, FamilyRetest, now, func(snapshot *journal.Snapshot) ([]notifications.Record, error) {
		return ProcessRetest(ctx, e.store, snapshot.FingerboardTests, snapshot.Profile.Reminders.Retest, now)
	})
}

func (e *Engine) run(
	ctx context.Context,
	family string,
	now time.Time,
	process func(snapshot *journal.Snapshot) ([]notifications.Record, error),
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "reminders.engine."+family)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot, err := e.provider.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("get journal snapshot: %w", err)
	}

	added, err := process(snapshot)
	fired := len(added) > 0
	span.SetAttributes(attribute.Int("reminders.added", len(added)))
	e.metricsManager.CounterReminderChecks.WithLabelValues(family, strconv.FormatBool(fired)).Inc()
	e.metricsManager.GaugeSchedulerLastRunUnix.WithLabelValues(family).Set(float64(now.Unix()))

	if fired {
		log.Infof("reminders [%s]: %d notification(s) added", family, len(added))
	} else {
		log.Debugf("reminders [%s]: nothing to remind", family)
	}

	if err != nil {
		return fmt.Errorf("%s reminders: %w", family, err)
	}
	return nil
}
