package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/cragjournal/internal/cycle"
	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/notifications"
)

// OverdueThresholdDays is the longest cycle that still counts as on time. The cycle length
// so far includes the start day, so day 33 of the cycle (32 full days after the start) is overdue.
const OverdueThresholdDays = 32

type CycleCheck struct {
	Overdue      bool
	BeforePeriod bool
	// ElapsedDays is the 1-based day count since the last period start, not wrapped
	ElapsedDays         int
	DaysUntilNextPeriod int
}

func (c CycleCheck) ShouldRemind() bool {
	return c.Overdue || c.BeforePeriod
}

// CheckCycle evaluates both cycle reminders. Missing or invalid settings never fire.
func CheckCycle(settings *cycle.Settings, reminderSettings journal.CycleReminderSettings, now time.Time) CycleCheck {
	if settings == nil || settings.Validate() != nil {
		return CycleCheck{}
	}

	check := CycleCheck{
		ElapsedDays:         cycle.DaysSinceStart(*settings, now) + 1,
		DaysUntilNextPeriod: cycle.DaysUntilNextPeriod(*settings, now),
	}
	check.Overdue = reminderSettings.OverdueEnabled && check.ElapsedDays > OverdueThresholdDays
	check.BeforePeriod = reminderSettings.BeforePeriodEnabled && check.DaysUntilNextPeriod == 1

	return check
}

func CycleOverdueNotification(check CycleCheck) notifications.Draft {
	return notifications.Draft{
		Type:     notifications.TypeCycleOverdue,
		Title:    "Period overdue",
		Message:  fmt.Sprintf("It has been %d days since your last period started. Update your cycle start date to keep the phase advice accurate.", check.ElapsedDays),
		Priority: notifications.PriorityHigh,
		ActionButton: &notifications.ActionButton{
			Text:   "Update cycle",
			Action: "navigate",
			Data:   map[string]string{"path": "/settings/cycle"},
		},
	}
}

func BeforePeriodNotification(_ CycleCheck) notifications.Draft {
	return notifications.Draft{
		Type:     notifications.TypeCycleReminder,
		Title:    "Period expected tomorrow",
		Message:  "Your next period is expected tomorrow. Plan a lighter session if you need to.",
		Priority: notifications.PriorityMedium,
		ActionButton: &notifications.ActionButton{
			Text:   "View cycle",
			Action: "navigate",
			Data:   map[string]string{"path": "/cycle"},
		},
	}
}

// ProcessCycle adds the due cycle reminders, overdue first. Calling it again on the
// same day adds nothing.
func ProcessCycle(
	ctx context.Context,
	store notificationStore,
	settings *cycle.Settings,
	reminderSettings journal.CycleReminderSettings,
	now time.Time,
) ([]notifications.Record, error) {
	check := CheckCycle(settings, reminderSettings, now)

	var drafts []notifications.Draft
	if check.Overdue {
		drafts = append(drafts, CycleOverdueNotification(check))
	}
	if check.BeforePeriod {
		drafts = append(drafts, BeforePeriodNotification(check))
	}

	return addAll(ctx, store, drafts...)
}
