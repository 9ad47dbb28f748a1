package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPollInterval = 5 * time.Minute
	DefaultRunTimeout   = time.Minute
)

// Family is one independent reminder evaluator, run at most once per calendar day
// at or after its checkpoint hour.
type Family struct {
	Name           string
	CheckpointHour int
	Run            func(ctx context.Context, now time.Time) error
}

type familyState struct {
	Family
	// serializes the immediate check and the cron ticks
	mu         sync.Mutex
	lastRunDay string
}

// Scheduler polls every family on a fixed interval. A tick runs a family when the
// local hour reached its checkpoint and it did not run successfully today yet,
// so a late wake-up (e.g. after a restart at 11:00) still runs it once.
type Scheduler struct {
	families     []*familyState
	pollInterval time.Duration
	runTimeout   time.Duration
	now          func() time.Time
	loc          *time.Location
}

func New(families []Family, pollInterval time.Duration, now func() time.Time, loc *time.Location) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}

	s := &Scheduler{
		pollInterval: pollInterval,
		runTimeout:   DefaultRunTimeout,
		now:          now,
		loc:          loc,
	}
	for _, f := range families {
		s.families = append(s.families, &familyState{Family: f})
	}
	return s
}

// Start checks every family once right away, then on each poll interval.
// The returned stop func cancels the schedule and waits for running jobs.
func (s *Scheduler) Start(ctx context.Context) (stop func(), err error) {
	ctx, cancel := context.WithCancel(ctx)

	cronEngine := cron.New(
		cron.WithLocation(s.loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger()))),
	)

	spec := fmt.Sprintf("@every %s", s.pollInterval)
	for _, f := range s.families {
		if _, err := cronEngine.AddFunc(spec, func() {
			s.tickFamily(ctx, f)
		}); err != nil {
			cancel()
			return nil, fmt.Errorf("add %s reminders job: %w", f.Name, err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Tick(ctx)
	}()

	cronEngine.Start()
	log.Infof("reminder scheduler started, %d families, polling every %s", len(s.families), s.pollInterval)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-cronEngine.Stop().Done()
			wg.Wait()
			log.Infoln("reminder scheduler stopped")
		})
	}, nil
}

// Tick checks every family once.
func (s *Scheduler) Tick(ctx context.Context) {
	for _, f := range s.families {
		if ctx.Err() != nil {
			return
		}
		s.tickFamily(ctx, f)
	}
}

// LastRunDay returns the last day (YYYY-MM-DD) the family ran successfully, empty if never.
func (s *Scheduler) LastRunDay(name string) string {
	for _, f := range s.families {
		if f.Name == name {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.lastRunDay
		}
	}
	return ""
}

func (s *Scheduler) tickFamily(ctx context.Context, f *familyState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := s.now().In(s.loc)
	today := now.Format(time.DateOnly)
	if now.Hour() < f.CheckpointHour || f.lastRunDay == today {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	log.Debugf("running %s reminders", f.Name)
	if err := f.Run(runCtx, now); err != nil {
		// not marked as done, the next tick retries
		log.Errorf("%s reminders failed: %s", f.Name, err)
		return
	}
	f.lastRunDay = today
}
