package journal

import "github.com/2beens/cragjournal/internal/cycle"

const DefaultInactivityThresholdDays = 3

// IntervalUnit is the unit of a user provided retest interval.
type IntervalUnit string

const (
	IntervalDays   IntervalUnit = "days"
	IntervalWeeks  IntervalUnit = "weeks"
	IntervalMonths IntervalUnit = "months"
)

// Days converts an interval to days. Months are approximated as 30 days.
func (u IntervalUnit) Days(interval int) int {
	switch u {
	case IntervalWeeks:
		return interval * 7
	case IntervalMonths:
		return interval * 30
	default:
		return interval
	}
}

type CycleReminderSettings struct {
	BeforePeriodEnabled bool `json:"beforePeriodEnabled"`
	OverdueEnabled      bool `json:"overdueEnabled"`
}

type InactivityReminderSettings struct {
	Enabled       bool `json:"enabled"`
	ThresholdDays int  `json:"thresholdDays"`
}

type RetestReminderSettings struct {
	Enabled  bool         `json:"enabled"`
	Interval int          `json:"interval"`
	Unit     IntervalUnit `json:"unit"`
}

type ActivityReminderSettings struct {
	MentalPracticeEnabled bool `json:"mentalPracticeEnabled"`
	FallsEnabled          bool `json:"fallsEnabled"`
}

type ReminderSettings struct {
	Cycle      CycleReminderSettings      `json:"cycle"`
	Inactivity InactivityReminderSettings `json:"inactivity"`
	Retest     RetestReminderSettings     `json:"retest"`
	Activity   ActivityReminderSettings   `json:"activity"`
}

func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Cycle: CycleReminderSettings{
			BeforePeriodEnabled: true,
			OverdueEnabled:      true,
		},
		Inactivity: InactivityReminderSettings{
			Enabled:       true,
			ThresholdDays: DefaultInactivityThresholdDays,
		},
		Retest: RetestReminderSettings{
			Enabled:  false,
			Interval: 6,
			Unit:     IntervalWeeks,
		},
		Activity: ActivityReminderSettings{
			MentalPracticeEnabled: true,
			FallsEnabled:          true,
		},
	}
}

// Profile holds the per-user settings the engine reads.
// Cycle is nil when cycle tracking is disabled.
type Profile struct {
	Cycle     *cycle.Settings  `json:"cycle,omitempty"`
	Reminders ReminderSettings `json:"reminders"`
}
