package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/notifications"
	"github.com/2beens/cragjournal/internal/stats"
)

type InactivityCheck struct {
	ShouldRemind         bool
	DaysSinceLastWorkout stats.Days
	ThresholdDays        int
}

// CheckInactivity fires once the last workout is at least ThresholdDays old.
// An empty history never fires.
func CheckInactivity(workouts []journal.Workout, reminderSettings journal.InactivityReminderSettings, now time.Time) InactivityCheck {
	threshold := reminderSettings.ThresholdDays
	if threshold <= 0 {
		threshold = journal.DefaultInactivityThresholdDays
	}

	var last *time.Time
	for _, w := range workouts {
		if w.StartTime.After(now) {
			continue
		}
		if last == nil || w.StartTime.After(*last) {
			start := w.StartTime
			last = &start
		}
	}

	check := InactivityCheck{
		DaysSinceLastWorkout: stats.DaysSince(now, last),
		ThresholdDays:        threshold,
	}
	check.ShouldRemind = reminderSettings.Enabled &&
		last != nil &&
		check.DaysSinceLastWorkout >= stats.Days(threshold)

	return check
}

func InactivityNotification(check InactivityCheck) notifications.Draft {
	return notifications.Draft{
		Type:     notifications.TypeWorkoutInactivity,
		Title:    "Time to train?",
		Message:  fmt.Sprintf("You have not logged a workout for %d days.", int(check.DaysSinceLastWorkout)),
		Priority: notifications.PriorityMedium,
		ActionButton: &notifications.ActionButton{
			Text:   "Log workout",
			Action: "navigate",
			Data:   map[string]string{"path": "/workouts/new"},
		},
	}
}

func ProcessInactivity(
	ctx context.Context,
	store notificationStore,
	workouts []journal.Workout,
	reminderSettings journal.InactivityReminderSettings,
	now time.Time,
) ([]notifications.Record, error) {
	check := CheckInactivity(workouts, reminderSettings, now)
	if !check.ShouldRemind {
		return nil, nil
	}
	return addAll(ctx, store, InactivityNotification(check))
}
