package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/notifications"
	"github.com/2beens/cragjournal/internal/stats"
)

const (
	ActivityWindowDays = 90

	MentalPracticeThresholdDays = 7
	FallsThresholdDays          = 30

	SubkeyMental = "mental"
	SubkeyFalls  = "falls"
)

type ActivityCheck struct {
	Mental MentalPracticeCheck
	Falls  FallsCheck
}

type MentalPracticeCheck struct {
	ShouldRemind bool
	// DaysSinceLastSession is Never when there was no session in the window
	DaysSinceLastSession stats.Days
	SessionsEver         int
}

type FallsCheck struct {
	ShouldRemind bool
	// DaysSinceLastFall is Never when there was no fall in the window
	DaysSinceLastFall    stats.Days
	ClimbingSessionsEver int
}

// CheckActivity evaluates the two encouragement nudges over the trailing window.
// Each only fires for users who did the activity at least once, ever.
func CheckActivity(workouts []journal.Workout, reminderSettings journal.ActivityReminderSettings, now time.Time) ActivityCheck {
	window := stats.TimeRange{
		Start: now.AddDate(0, 0, -ActivityWindowDays),
		End:   now,
	}
	inWindow := stats.FilterWorkouts(workouts, window)
	mental := stats.MentalSessions(inWindow, now)
	falls := stats.Falls(inWindow, now)

	var check ActivityCheck
	check.Mental.DaysSinceLastSession = mental.DaysSinceLastSession
	check.Falls.DaysSinceLastFall = falls.DaysSinceLastFall
	for _, w := range workouts {
		if w.Type.IsMentalPractice() {
			check.Mental.SessionsEver++
		}
		if w.Type.IsClimbing() {
			check.Falls.ClimbingSessionsEver++
		}
	}

	check.Mental.ShouldRemind = reminderSettings.MentalPracticeEnabled &&
		check.Mental.SessionsEver > 0 &&
		check.Mental.DaysSinceLastSession > MentalPracticeThresholdDays
	check.Falls.ShouldRemind = reminderSettings.FallsEnabled &&
		check.Falls.ClimbingSessionsEver > 0 &&
		check.Falls.DaysSinceLastFall > FallsThresholdDays

	return check
}

func MentalPracticeNotification(check MentalPracticeCheck) notifications.Draft {
	message := "You have not done a mental practice session in a while. A short one helps keep your head calm on hard routes."
	if !check.DaysSinceLastSession.IsNever() {
		message = fmt.Sprintf("Your last mental practice session was %d days ago. A short one helps keep your head calm on hard routes.", int(check.DaysSinceLastSession))
	}
	return notifications.Draft{
		Type:     notifications.TypeGeneral,
		Subkey:   SubkeyMental,
		Title:    "Mental practice",
		Message:  message,
		Priority: notifications.PriorityLow,
	}
}

func FallsPracticeNotification(check FallsCheck) notifications.Draft {
	message := "You have not practiced falling in a while. Regular, controlled falls keep the fear in check."
	if !check.DaysSinceLastFall.IsNever() {
		message = fmt.Sprintf("Your last recorded fall was %d days ago. Regular, controlled falls keep the fear in check.", int(check.DaysSinceLastFall))
	}
	return notifications.Draft{
		Type:     notifications.TypeGeneral,
		Subkey:   SubkeyFalls,
		Title:    "Falls practice",
		Message:  message,
		Priority: notifications.PriorityLow,
	}
}

func ProcessActivity(
	ctx context.Context,
	store notificationStore,
	workouts []journal.Workout,
	reminderSettings journal.ActivityReminderSettings,
	now time.Time,
) ([]notifications.Record, error) {
	check := CheckActivity(workouts, reminderSettings, now)

	var drafts []notifications.Draft
	if check.Mental.ShouldRemind {
		drafts = append(drafts, MentalPracticeNotification(check.Mental))
	}
	if check.Falls.ShouldRemind {
		drafts = append(drafts, FallsPracticeNotification(check.Falls))
	}

	return addAll(ctx, store, drafts...)
}
