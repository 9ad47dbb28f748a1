package stats

import (
	"sort"
	"time"

	"github.com/2beens/cragjournal/internal/cycle"
	"github.com/2beens/cragjournal/internal/journal"
)

// current streak never looks further back than this
const maxStreakLookbackDays = 365

type OverallStats struct {
	TotalWorkouts          int     `json:"totalWorkouts"`
	AverageWorkoutsPerWeek float64 `json:"averageWorkoutsPerWeek"`
	ThisMonth              int     `json:"thisMonth"`
	UniqueTrainingDays     int     `json:"uniqueTrainingDays"`
	// MostActiveDay is empty and MostActiveHour is -1 when there are no workouts
	MostActiveDay  string `json:"mostActiveDay"`
	MostActiveHour int    `json:"mostActiveHour"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
}

// overall uses the range filtered workouts for counts and activity peaks,
// the whole history for this month's count and for streaks.
func (a *Aggregator) overall(all, inRange []journal.Workout, tr TimeRange, now time.Time) OverallStats {
	stats := OverallStats{
		TotalWorkouts:          len(inRange),
		AverageWorkoutsPerWeek: ratio(len(inRange), tr.Weeks()),
		ThisMonth:              countInMonth(all, now, a.loc),
		MostActiveHour:         -1,
	}

	var dayCounts [7]int
	var hourCounts [24]int
	rangeDates := make(map[time.Time]struct{})
	for _, w := range inRange {
		start := w.StartTime.In(a.loc)
		dayCounts[start.Weekday()]++
		hourCounts[start.Hour()]++
		rangeDates[cycle.StartOfDay(start, a.loc)] = struct{}{}
	}
	stats.UniqueTrainingDays = len(rangeDates)

	if day := firstMaxIndex(dayCounts[:]); day >= 0 {
		stats.MostActiveDay = time.Weekday(day).String()
	}
	stats.MostActiveHour = firstMaxIndex(hourCounts[:])

	dates := WorkoutDates(all, a.loc)
	stats.CurrentStreak = CurrentStreak(dates, now)
	stats.LongestStreak = LongestStreak(dates)

	return stats
}

// firstMaxIndex returns the index of the first maximum, -1 when all counts are zero.
func firstMaxIndex(counts []int) int {
	maxIdx, maxCount := -1, 0
	for i, c := range counts {
		if c > maxCount {
			maxIdx, maxCount = i, c
		}
	}
	return maxIdx
}

func countInMonth(workouts []journal.Workout, now time.Time, loc *time.Location) int {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	nextMonthStart := monthStart.AddDate(0, 1, 0)
	count := 0
	for _, w := range workouts {
		if !w.StartTime.Before(monthStart) && w.StartTime.Before(nextMonthStart) {
			count++
		}
	}
	return count
}

// WorkoutDates returns the distinct calendar dates (midnight in loc) with at least one workout.
func WorkoutDates(workouts []journal.Workout, loc *time.Location) map[time.Time]struct{} {
	dates := make(map[time.Time]struct{}, len(workouts))
	for _, w := range workouts {
		dates[cycle.StartOfDay(w.StartTime, loc)] = struct{}{}
	}
	return dates
}

// CurrentStreak counts consecutive days with a workout going back from today (included).
// A day without workouts today means no current streak.
func CurrentStreak(dates map[time.Time]struct{}, now time.Time) int {
	day := cycle.StartOfDay(now, now.Location())
	streak := 0
	for i := 0; i < maxStreakLookbackDays; i++ {
		if _, ok := dates[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak is the longest run of consecutive calendar dates in the set.
func LongestStreak(dates map[time.Time]struct{}) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if cycle.DaysBetween(sorted[i-1], sorted[i]) == 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}
