package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/2beens/cragjournal/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type runRecorder struct {
	mu   sync.Mutex
	runs []time.Time
	err  error
}

func (r *runRecorder) Run(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, now)
	return r.err
}

func (r *runRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestScheduler_CheckpointGate(t *testing.T) {
	clock := &testClock{now: at(15, 8, 55)}
	cycleRuns := &runRecorder{}
	activityRuns := &runRecorder{}

	s := scheduler.New([]scheduler.Family{
		{Name: "cycle", CheckpointHour: 9, Run: cycleRuns.Run},
		{Name: "activity", CheckpointHour: 10, Run: activityRuns.Run},
	}, time.Minute, clock.Now, time.UTC)
	ctx := context.Background()

	s.Tick(ctx)
	assert.Equal(t, 0, cycleRuns.Count())

	clock.Set(at(15, 9, 0))
	s.Tick(ctx)
	assert.Equal(t, 1, cycleRuns.Count())
	assert.Equal(t, 0, activityRuns.Count())
	assert.Equal(t, "2024-03-15", s.LastRunDay("cycle"))

	// every poll after that on the same day is a no-op
	for minute := 5; minute < 60; minute += 5 {
		clock.Set(at(15, 9, minute))
		s.Tick(ctx)
	}
	assert.Equal(t, 1, cycleRuns.Count())

	clock.Set(at(15, 10, 2))
	s.Tick(ctx)
	assert.Equal(t, 1, cycleRuns.Count())
	assert.Equal(t, 1, activityRuns.Count())

	// next day
	clock.Set(at(16, 9, 1))
	s.Tick(ctx)
	assert.Equal(t, 2, cycleRuns.Count())
	assert.Equal(t, 1, activityRuns.Count())
	assert.Empty(t, s.LastRunDay("unknown"))
}

func TestScheduler_LateWakeUpStillRunsOnce(t *testing.T) {
	clock := &testClock{now: at(15, 13, 37)}
	runs := &runRecorder{}

	s := scheduler.New([]scheduler.Family{
		{Name: "retest", CheckpointHour: 10, Run: runs.Run},
	}, time.Minute, clock.Now, time.UTC)

	s.Tick(context.Background())
	s.Tick(context.Background())
	assert.Equal(t, 1, runs.Count())
}

func TestScheduler_FailedRunIsRetried(t *testing.T) {
	clock := &testClock{now: at(15, 9, 0)}
	runs := &runRecorder{err: errors.New("db down")}

	s := scheduler.New([]scheduler.Family{
		{Name: "inactivity", CheckpointHour: 9, Run: runs.Run},
	}, time.Minute, clock.Now, time.UTC)

	s.Tick(context.Background())
	assert.Empty(t, s.LastRunDay("inactivity"))

	runs.mu.Lock()
	runs.err = nil
	runs.mu.Unlock()

	clock.Set(at(15, 9, 5))
	s.Tick(context.Background())
	s.Tick(context.Background())
	assert.Equal(t, 2, runs.Count())
	assert.Equal(t, "2024-03-15", s.LastRunDay("inactivity"))
}

func TestScheduler_UsesLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 08:30 UTC is 09:30 in Berlin (CET)
	clock := &testClock{now: time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)}
	runs := &runRecorder{}

	s := scheduler.New([]scheduler.Family{
		{Name: "cycle", CheckpointHour: 9, Run: runs.Run},
	}, time.Minute, clock.Now, berlin)

	s.Tick(context.Background())
	require.Equal(t, 1, runs.Count())
	assert.Equal(t, berlin, runs.runs[0].Location())
}

func TestScheduler_StartChecksImmediately(t *testing.T) {
	clock := &testClock{now: at(15, 11, 0)}
	ran := make(chan struct{}, 1)

	s := scheduler.New([]scheduler.Family{
		{
			Name:           "cycle",
			CheckpointHour: 9,
			Run: func(ctx context.Context, now time.Time) error {
				ran <- struct{}{}
				return nil
			},
		},
	}, time.Hour, clock.Now, time.UTC)

	stop, err := s.Start(context.Background())
	require.NoError(t, err)

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("family was not checked on start")
	}

	stop()
	// stop is safe to call twice
	stop()
	assert.Equal(t, "2024-03-15", s.LastRunDay("cycle"))
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	clock := &testClock{now: at(15, 11, 0)}
	started := make(chan struct{})

	s := scheduler.New([]scheduler.Family{
		{
			Name:           "activity",
			CheckpointHour: 10,
			Run: func(ctx context.Context, now time.Time) error {
				close(started)
				<-ctx.Done()
				return ctx.Err()
			},
		},
	}, time.Hour, clock.Now, time.UTC)

	stop, err := s.Start(context.Background())
	require.NoError(t, err)
	<-started

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return")
	}
	assert.Empty(t, s.LastRunDay("activity"))
}
