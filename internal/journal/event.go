package journal

import "time"

// EventType can be one of:
//   - INJURY
//   - PHYSIO
//   - COMPETITION
//   - TRIP
//   - OTHER
type EventType string

const (
	EventTypeInjury      EventType = "INJURY"
	EventTypePhysio      EventType = "PHYSIO"
	EventTypeCompetition EventType = "COMPETITION"
	EventTypeTrip        EventType = "TRIP"
	EventTypeOther       EventType = "OTHER"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeInjury,
		EventTypePhysio,
		EventTypeCompetition,
		EventTypeTrip,
		EventTypeOther:
		return true
	default:
		return false
	}
}

// Event is a calendar event. Trips additionally carry their start and end dates.
type Event struct {
	ID            int        `json:"id"`
	Type          EventType  `json:"type"`
	Date          time.Time  `json:"date"`
	TripStartDate *time.Time `json:"tripStartDate,omitempty"`
	TripEndDate   *time.Time `json:"tripEndDate,omitempty"`
}
