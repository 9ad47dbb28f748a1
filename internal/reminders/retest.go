package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/notifications"
	"github.com/2beens/cragjournal/internal/stats"
)

const SubkeyRetest = "retest"

type RetestCheck struct {
	ShouldRemind      bool
	DaysSinceLastTest stats.Days
	IntervalDays      int
}

// CheckRetest fires when the last fingerboard test is at least one interval old.
// Without any test, or with a non positive interval, it never fires.
func CheckRetest(tests []journal.FingerboardTest, reminderSettings journal.RetestReminderSettings, now time.Time) RetestCheck {
	check := RetestCheck{
		IntervalDays: reminderSettings.Unit.Days(reminderSettings.Interval),
	}

	var last *time.Time
	for _, test := range tests {
		if test.Date.After(now) {
			continue
		}
		if last == nil || test.Date.After(*last) {
			date := test.Date
			last = &date
		}
	}
	check.DaysSinceLastTest = stats.DaysSince(now, last)

	check.ShouldRemind = reminderSettings.Enabled &&
		check.IntervalDays > 0 &&
		last != nil &&
		check.DaysSinceLastTest >= stats.Days(check.IntervalDays)

	return check
}

func RetestNotification(check RetestCheck) notifications.Draft {
	return notifications.Draft{
		Type:     notifications.TypeWorkoutReminder,
		Subkey:   SubkeyRetest,
		Title:    "Fingerboard retest due",
		Message:  fmt.Sprintf("Your last fingerboard test was %d days ago. Time to measure your progress.", int(check.DaysSinceLastTest)),
		Priority: notifications.PriorityMedium,
		ActionButton: &notifications.ActionButton{
			Text:   "Start test",
			Action: "navigate",
			Data:   map[string]string{"path": "/fingerboard/test"},
		},
	}
}

func ProcessRetest(
	ctx context.Context,
	store notificationStore,
	tests []journal.FingerboardTest,
	reminderSettings journal.RetestReminderSettings,
	now time.Time,
) ([]notifications.Record, error) {
	check := CheckRetest(tests, reminderSettings, now)
	if !check.ShouldRemind {
		return nil, nil
	}
	return addAll(ctx, store, RetestNotification(check))
}
