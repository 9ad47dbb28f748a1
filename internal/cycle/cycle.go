package cycle

import (
	"errors"
	"time"
)

const (
	// ovulationOffsetDays is counted from the last period start, regardless of cycle length
	ovulationOffsetDays = 14
	fertileWindowFrom   = 10
	fertileWindowTo     = 16
)

var (
	ErrInvalidCycleLength = errors.New("cycle length must be positive")
	ErrMissingStartDate   = errors.New("last period start date not set")
)

// Phase is one of the five fixed training-relevant segments of a cycle.
type Phase string

const (
	PhaseMenstrual   Phase = "menstrual"
	PhaseFollicular  Phase = "follicular"
	PhaseOvulation   Phase = "ovulation"
	PhaseEarlyLuteal Phase = "earlyLuteal"
	PhaseLateLuteal  Phase = "lateLuteal"
)

// Phases lists all phases in cycle order.
var Phases = []Phase{
	PhaseMenstrual,
	PhaseFollicular,
	PhaseOvulation,
	PhaseEarlyLuteal,
	PhaseLateLuteal,
}

func (p Phase) String() string {
	return string(p)
}

type Settings struct {
	CycleLength         int       `json:"cycleLength"`
	LastPeriodStartDate time.Time `json:"lastPeriodStartDate"`
	Timezone            string    `json:"timezone"`
}

// Validate must be called by whoever accepts settings from the user,
// CalculateInfo does not check them.
func (s Settings) Validate() error {
	if s.CycleLength <= 0 {
		return ErrInvalidCycleLength
	}
	if s.LastPeriodStartDate.IsZero() {
		return ErrMissingStartDate
	}
	return nil
}

// Location resolves the settings timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type Info struct {
	CurrentDay        int       `json:"currentDay"`
	Phase             Phase     `json:"phase"`
	NextPeriodDate    time.Time `json:"nextPeriodDate"`
	NextOvulationDate time.Time `json:"nextOvulationDate"`
	IsInFertileWindow bool      `json:"isInFertileWindow"`
	Recommendations   []string  `json:"recommendations"`
}

// CalculateInfo derives the cycle day, phase and the dates around it for the target date.
// It is a pure function of its arguments.
func CalculateInfo(settings Settings, target time.Time) Info {
	start := settings.startDate()

	currentDay := DayOfCycle(settings, target)
	phase := PhaseForDay(currentDay)

	return Info{
		CurrentDay:        currentDay,
		Phase:             phase,
		NextPeriodDate:    start.AddDate(0, 0, settings.CycleLength),
		NextOvulationDate: start.AddDate(0, 0, ovulationOffsetDays),
		IsInFertileWindow: currentDay >= fertileWindowFrom && currentDay <= fertileWindowTo,
		Recommendations:   Recommendations(phase),
	}
}

// DayOfCycle returns the 1-based position of target within the cycle.
// Dates before the last period start wrap backwards, so the result is always in [1, CycleLength].
func DayOfCycle(settings Settings, target time.Time) int {
	elapsed := DaysSinceStart(settings, target)
	return floorMod(elapsed, settings.CycleLength) + 1
}

// DayOfCycleOnDate is DayOfCycle for a calendar date, such as a journal event date.
// The date's own year, month and day are used, it is never converted into the settings timezone.
func DayOfCycleOnDate(settings Settings, date time.Time) int {
	elapsed := DaysBetween(settings.startDate(), date)
	return floorMod(elapsed, settings.CycleLength) + 1
}

// DaysSinceStart counts whole calendar days between the last period start and target,
// negative when target is before the start.
func DaysSinceStart(settings Settings, target time.Time) int {
	return DaysBetween(settings.startDate(), StartOfDay(target, settings.Location()))
}

// DaysUntilNextPeriod is the number of calendar days from now until
// LastPeriodStartDate + CycleLength. Zero or negative means the period is due or late.
func DaysUntilNextPeriod(settings Settings, now time.Time) int {
	next := settings.startDate().AddDate(0, 0, settings.CycleLength)
	return DaysBetween(StartOfDay(now, settings.Location()), next)
}

// startDate keeps the calendar date of LastPeriodStartDate as entered
// and places it at midnight in the settings timezone.
func (s Settings) startDate() time.Time {
	d := s.LastPeriodStartDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.Location())
}

// PhaseForDay buckets a cycle day into a phase. The buckets are fixed and do not
// scale with the cycle length; everything from day 21 on is late luteal.
func PhaseForDay(day int) Phase {
	switch {
	case day <= 7:
		return PhaseMenstrual
	case day <= 12:
		return PhaseFollicular
	case day <= 16:
		return PhaseOvulation
	case day <= 20:
		return PhaseEarlyLuteal
	default:
		return PhaseLateLuteal
	}
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween counts calendar days from a to b, each taken in its own location.
// Computed on dates, so DST shifts do not produce off-by-one results.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
