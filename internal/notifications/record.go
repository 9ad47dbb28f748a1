package notifications

import (
	"fmt"
	"time"
)

// Type can be one of:
// cycle_reminder, cycle_overdue, workout_reminder, workout_inactivity, general
type Type string

const (
	TypeCycleReminder     Type = "cycle_reminder"
	TypeCycleOverdue      Type = "cycle_overdue"
	TypeWorkoutReminder   Type = "workout_reminder"
	TypeWorkoutInactivity Type = "workout_inactivity"
	TypeGeneral           Type = "general"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ActionButton struct {
	Text   string            `json:"text"`
	Action string            `json:"action"`
	Data   map[string]string `json:"data,omitempty"`
}

// DedupKey identifies a reminder firing: at most one record per key is ever added.
// Subkey separates reminders sharing a type (e.g. the mental and falls nudges).
type DedupKey struct {
	Type   Type   `json:"type"`
	Subkey string `json:"subkey,omitempty"`
	// Day is the calendar day of the firing, YYYY-MM-DD
	Day string `json:"day"`
}

func (k DedupKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Type, k.Subkey, k.Day)
}

// Draft is a notification before the store assigns its identity.
type Draft struct {
	Type         Type
	Subkey       string
	Title        string
	Message      string
	Priority     Priority
	ActionButton *ActionButton
}

// KeyAt is the dedup key of the draft fired at t (calendar day in t's location).
func (d Draft) KeyAt(t time.Time) DedupKey {
	return DedupKey{
		Type:   d.Type,
		Subkey: d.Subkey,
		Day:    t.Format(time.DateOnly),
	}
}

type Record struct {
	ID           string        `json:"id"`
	Type         Type          `json:"type"`
	Title        string        `json:"title"`
	Message      string        `json:"message"`
	Priority     Priority      `json:"priority"`
	ActionButton *ActionButton `json:"actionButton,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
	Read         bool          `json:"read"`
	Key          DedupKey      `json:"dedupKey"`
}
