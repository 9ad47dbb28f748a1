package stats

import (
	"time"

	"github.com/2beens/cragjournal/internal/journal"
)

type MentalSessionStats struct {
	TotalSessions         int        `json:"totalSessions"`
	AverageFocusLevel     float64    `json:"averageFocusLevel"`
	AverageBeforeClimbing float64    `json:"averageBeforeClimbing"`
	LastSessionDate       *time.Time `json:"lastSessionDate,omitempty"`
	DaysSinceLastSession  Days       `json:"daysSinceLastSession"`
}

type FallsStats struct {
	ClimbingSessions  int        `json:"climbingSessions"`
	TotalFalls        int        `json:"totalFalls"`
	FallsPerSession   float64    `json:"fallsPerSession"`
	SessionsWithFalls int        `json:"sessionsWithFalls"`
	LastFallDate      *time.Time `json:"lastFallDate,omitempty"`
	DaysSinceLastFall Days       `json:"daysSinceLastFall"`
}

// MentalSessions is exported for the activity reminders, which use their own window.
func MentalSessions(workouts []journal.Workout, now time.Time) MentalSessionStats {
	return mentalSessionStats(workouts, now)
}

// Falls is exported for the activity reminders, which use their own window.
func Falls(workouts []journal.Workout, now time.Time) FallsStats {
	return fallsStats(workouts, now)
}

func mentalSessionStats(workouts []journal.Workout, now time.Time) MentalSessionStats {
	var (
		stats                  MentalSessionStats
		focusSum, focusCount   int
		beforeSum, beforeCount int
	)

	for _, w := range workouts {
		if !w.Type.IsMentalPractice() {
			continue
		}
		stats.TotalSessions++
		stats.LastSessionDate = latest(stats.LastSessionDate, w.StartTime)

		if w.FocusLevel != nil {
			focusSum += *w.FocusLevel
			focusCount++
		}
		if w.MentalState != nil && w.MentalState.BeforeClimbing != nil {
			beforeSum += *w.MentalState.BeforeClimbing
			beforeCount++
		}
	}

	stats.AverageFocusLevel = ratio(focusSum, focusCount)
	stats.AverageBeforeClimbing = ratio(beforeSum, beforeCount)
	stats.DaysSinceLastSession = DaysSince(now, stats.LastSessionDate)

	return stats
}

// fallsStats counts the workout level flag and every climb section flag separately,
// so one session can add more than one fall.
func fallsStats(workouts []journal.Workout, now time.Time) FallsStats {
	var stats FallsStats
	for _, w := range workouts {
		if !w.Type.IsClimbing() {
			continue
		}
		stats.ClimbingSessions++

		falls := w.Falls()
		if falls == 0 {
			continue
		}
		stats.TotalFalls += falls
		stats.SessionsWithFalls++
		stats.LastFallDate = latest(stats.LastFallDate, w.StartTime)
	}

	stats.FallsPerSession = ratio(stats.TotalFalls, stats.ClimbingSessions)
	stats.DaysSinceLastFall = DaysSince(now, stats.LastFallDate)

	return stats
}
