package stats

import (
	"encoding/json"
	"math"
	"time"
)

// Days counts whole days since something happened.
// Never (+Inf) means it never happened; it is meant for display only, never for arithmetic.
type Days float64

var Never = Days(math.Inf(1))

func (d Days) IsNever() bool {
	return math.IsInf(float64(d), 1)
}

// MarshalJSON renders Never as null, JSON has no infinity.
func (d Days) MarshalJSON() ([]byte, error) {
	if d.IsNever() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

func (d *Days) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Never
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Days(f)
	return nil
}

// DaysSince is floor((now - t) / 24h), Never for a nil t.
func DaysSince(now time.Time, t *time.Time) Days {
	if t == nil {
		return Never
	}
	return Days(math.Floor(now.Sub(*t).Hours() / 24))
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundTo2(float64(part) / float64(total) * 100)
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundTo2(float64(part) / float64(total))
}

// leave only 2 decimals
func roundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}
