package stats

import (
	"time"

	"github.com/2beens/cragjournal/internal/cycle"
	"github.com/2beens/cragjournal/internal/journal"
)

type Input struct {
	Workouts      []journal.Workout
	Tags          []journal.Tag
	Timeframe     Timeframe
	CustomRange   *TimeRange
	Events        []journal.Event
	CycleSettings *cycle.Settings
}

// Data is everything the statistics dashboard shows for one time range.
type Data struct {
	TimeRange      TimeRange          `json:"timeRange"`
	Overall        OverallStats       `json:"overall"`
	WorkoutTypes   []TypeStats        `json:"workoutTypes"`
	Tags           []TagStats         `json:"tags"`
	TrainingVolume []VolumeStats      `json:"trainingVolume"`
	MentalSessions MentalSessionStats `json:"mentalSessions"`
	Falls          FallsStats         `json:"falls"`
	InjuryCycle    InjuryCycleStats   `json:"injuryCycle"`
}

// Aggregator computes statistics over a workout/event history.
// Results depend only on the input and the injected clock.
type Aggregator struct {
	now func() time.Time
	loc *time.Location
}

// NewAggregator creates an aggregator doing its calendar math in loc.
// A nil now uses time.Now, a nil loc uses UTC.
func NewAggregator(now func() time.Time, loc *time.Location) *Aggregator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		now: now,
		loc: loc,
	}
}

func (a *Aggregator) Now() time.Time {
	return a.now().In(a.loc)
}

func (a *Aggregator) Calculate(in Input) Data {
	now := a.Now()
	timeRange := TimeRangeFor(in.Timeframe, now, in.CustomRange)

	workouts := FilterWorkouts(in.Workouts, timeRange)
	events := filterEvents(in.Events, timeRange)

	return Data{
		TimeRange:      timeRange,
		Overall:        a.overall(in.Workouts, workouts, timeRange, now),
		WorkoutTypes:   typeStats(workouts, timeRange),
		Tags:           tagStats(workouts, in.Tags, timeRange),
		TrainingVolume: volumeStats(workouts),
		MentalSessions: mentalSessionStats(workouts, now),
		Falls:          fallsStats(workouts, now),
		InjuryCycle:    InjuryCycle(events, in.CycleSettings),
	}
}

// FilterWorkouts keeps the workouts starting within the range.
func FilterWorkouts(workouts []journal.Workout, tr TimeRange) []journal.Workout {
	filtered := make([]journal.Workout, 0, len(workouts))
	for _, w := range workouts {
		if tr.Contains(w.StartTime) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// filterEvents compares calendar dates, event dates carry no time of day.
func filterEvents(events []journal.Event, tr TimeRange) []journal.Event {
	filtered := make([]journal.Event, 0, len(events))
	for _, e := range events {
		if tr.ContainsDate(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
