package stats

import (
	"github.com/2beens/cragjournal/internal/cycle"
	"github.com/2beens/cragjournal/internal/journal"
)

type PhaseCount struct {
	Phase      cycle.Phase `json:"phase"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

type CycleDayCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

type InjuryCycleStats struct {
	Enabled       bool `json:"enabled"`
	TotalInjuries int  `json:"totalInjuries"`
	// ByPhase always holds every phase, in cycle order
	ByPhase []PhaseCount `json:"byPhase"`
	// ByCycleDay holds days 1..cycle length, zero filled
	ByCycleDay      []CycleDayCount `json:"byCycleDay"`
	MostCommonPhase cycle.Phase     `json:"mostCommonPhase,omitempty"`
}

// InjuryCycle places every injury on the cycle day and phase of its own date.
// Without (valid) cycle settings nothing is computed and the zero result is returned.
func InjuryCycle(events []journal.Event, settings *cycle.Settings) InjuryCycleStats {
	stats := InjuryCycleStats{
		ByPhase:    make([]PhaseCount, 0, len(cycle.Phases)),
		ByCycleDay: []CycleDayCount{},
	}
	if settings == nil || settings.Validate() != nil {
		for _, p := range cycle.Phases {
			stats.ByPhase = append(stats.ByPhase, PhaseCount{Phase: p})
		}
		return stats
	}
	stats.Enabled = true

	phaseCounts := make(map[cycle.Phase]int, len(cycle.Phases))
	dayCounts := make([]int, settings.CycleLength)
	for _, e := range events {
		if e.Type != journal.EventTypeInjury {
			continue
		}
		day := cycle.DayOfCycleOnDate(*settings, e.Date)
		phaseCounts[cycle.PhaseForDay(day)]++
		dayCounts[day-1]++
		stats.TotalInjuries++
	}

	maxCount := 0
	for _, p := range cycle.Phases {
		stats.ByPhase = append(stats.ByPhase, PhaseCount{
			Phase:      p,
			Count:      phaseCounts[p],
			Percentage: percentage(phaseCounts[p], stats.TotalInjuries),
		})
		if phaseCounts[p] > maxCount {
			maxCount = phaseCounts[p]
			stats.MostCommonPhase = p
		}
	}

	stats.ByCycleDay = make([]CycleDayCount, settings.CycleLength)
	for i, c := range dayCounts {
		stats.ByCycleDay[i] = CycleDayCount{Day: i + 1, Count: c}
	}

	return stats
}
