package stats

import (
	"math"
	"time"

	"github.com/2beens/cragjournal/internal/cycle"
)

// Timeframe is a named statistics window, anchored at now.
type Timeframe string

const (
	Timeframe1Week   Timeframe = "1week"
	Timeframe1Month  Timeframe = "1month"
	Timeframe3Months Timeframe = "3months"
	Timeframe6Months Timeframe = "6months"
	Timeframe1Year   Timeframe = "1year"
	TimeframeCustom  Timeframe = "custom"

	defaultCustomRangeDays = 30
)

func (tf Timeframe) IsValid() bool {
	switch tf {
	case Timeframe1Week,
		Timeframe1Month,
		Timeframe3Months,
		Timeframe6Months,
		Timeframe1Year,
		TimeframeCustom:
		return true
	default:
		return false
	}
}

// TimeRange is inclusive on both ends.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && !t.After(tr.End)
}

// ContainsDate reports whether the calendar date of d falls on one of the range days.
// Meant for date-only values, which are read back as midnight UTC.
func (tr TimeRange) ContainsDate(d time.Time) bool {
	return cycle.DaysBetween(tr.Start, d) >= 0 && cycle.DaysBetween(d, tr.End) >= 0
}

// Days is the number of calendar days the range touches.
func (tr TimeRange) Days() int {
	days := cycle.DaysBetween(tr.Start, tr.End) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Weeks is ceil(Days/7).
func (tr TimeRange) Weeks() int {
	return int(math.Ceil(float64(tr.Days()) / 7))
}

// TimeRangeFor maps a timeframe to the calendar days ending today (end of day inclusive).
// Custom timeframes use the given range and fall back to the last 30 days without one.
// Unknown timeframes are treated as 1month.
func TimeRangeFor(tf Timeframe, now time.Time, custom *TimeRange) TimeRange {
	loc := now.Location()
	end := endOfDay(now, loc)
	today := cycle.StartOfDay(now, loc)

	var start time.Time
	switch tf {
	case Timeframe1Week:
		start = today.AddDate(0, 0, -6)
	case Timeframe3Months:
		start = today.AddDate(0, -3, 1)
	case Timeframe6Months:
		start = today.AddDate(0, -6, 1)
	case Timeframe1Year:
		start = today.AddDate(-1, 0, 1)
	case TimeframeCustom:
		if custom != nil && !custom.Start.IsZero() && !custom.End.IsZero() {
			return TimeRange{
				Start: cycle.StartOfDay(custom.Start, loc),
				End:   endOfDay(custom.End, loc),
			}
		}
		start = today.AddDate(0, 0, -(defaultCustomRangeDays - 1))
	default:
		start = today.AddDate(0, -1, 1)
	}

	return TimeRange{
		Start: start,
		End:   end,
	}
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	return cycle.StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
