package cycle_test

import (
	"testing"
	"time"

	"github.com/2beens/cragjournal/internal/cycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSettings = cycle.Settings{
	CycleLength:         28,
	LastPeriodStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	Timezone:            "UTC",
}

func dayN(n int) time.Time {
	return time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func TestCalculateInfo_PhaseTable(t *testing.T) {
	testCases := []struct {
		day           int
		expectedDay   int
		expectedPhase cycle.Phase
	}{
		{day: 1, expectedDay: 1, expectedPhase: cycle.PhaseMenstrual},
		{day: 7, expectedDay: 7, expectedPhase: cycle.PhaseMenstrual},
		{day: 8, expectedDay: 8, expectedPhase: cycle.PhaseFollicular},
		{day: 12, expectedDay: 12, expectedPhase: cycle.PhaseFollicular},
		{day: 13, expectedDay: 13, expectedPhase: cycle.PhaseOvulation},
		{day: 16, expectedDay: 16, expectedPhase: cycle.PhaseOvulation},
		{day: 17, expectedDay: 17, expectedPhase: cycle.PhaseEarlyLuteal},
		{day: 20, expectedDay: 20, expectedPhase: cycle.PhaseEarlyLuteal},
		{day: 21, expectedDay: 21, expectedPhase: cycle.PhaseLateLuteal},
		{day: 28, expectedDay: 28, expectedPhase: cycle.PhaseLateLuteal},
		{day: 29, expectedDay: 1, expectedPhase: cycle.PhaseMenstrual},
		{day: 36, expectedDay: 8, expectedPhase: cycle.PhaseFollicular},
	}

	for _, tc := range testCases {
		info := cycle.CalculateInfo(testSettings, dayN(tc.day))
		assert.Equal(t, tc.expectedDay, info.CurrentDay, "day %d", tc.day)
		assert.Equal(t, tc.expectedPhase, info.Phase, "day %d", tc.day)
	}
}

func TestCalculateInfo_Dates(t *testing.T) {
	info := cycle.CalculateInfo(testSettings, dayN(40))
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), info.NextPeriodDate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), info.NextOvulationDate)

	// ovulation offset is fixed, cycle length does not move it
	longCycle := testSettings
	longCycle.CycleLength = 35
	info = cycle.CalculateInfo(longCycle, dayN(3))
	assert.Equal(t, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), info.NextPeriodDate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), info.NextOvulationDate)
}

func TestCalculateInfo_Pure(t *testing.T) {
	target := dayN(14)
	first := cycle.CalculateInfo(testSettings, target)
	second := cycle.CalculateInfo(testSettings, target)
	assert.Equal(t, first, second)

	first.Recommendations[0] = "changed"
	third := cycle.CalculateInfo(testSettings, target)
	assert.NotEqual(t, "changed", third.Recommendations[0])
}

func TestCalculateInfo_NegativeOffsets(t *testing.T) {
	before := time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC)
	info := cycle.CalculateInfo(testSettings, before)
	assert.Equal(t, 28, info.CurrentDay)
	assert.Equal(t, cycle.PhaseLateLuteal, info.Phase)

	fullCycleBefore := time.Date(2023, 12, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, cycle.DayOfCycle(testSettings, fullCycleBefore))
}

func TestDayOfCycle_AlwaysInRange(t *testing.T) {
	for _, length := range []int{1, 5, 21, 28, 35, 45} {
		settings := testSettings
		settings.CycleLength = length
		for offset := -200; offset <= 200; offset++ {
			target := settings.LastPeriodStartDate.AddDate(0, 0, offset)
			day := cycle.DayOfCycle(settings, target)
			require.GreaterOrEqual(t, day, 1, "length %d offset %d", length, offset)
			require.LessOrEqual(t, day, length, "length %d offset %d", length, offset)
		}
	}
}

func TestCalculateInfo_FertileWindow(t *testing.T) {
	for day := 1; day <= 28; day++ {
		info := cycle.CalculateInfo(testSettings, dayN(day))
		expected := day >= 10 && day <= 16
		assert.Equal(t, expected, info.IsInFertileWindow, "day %d", day)
	}
}

func TestCalculateInfo_ShortCycleNeverReachesLateLuteal(t *testing.T) {
	settings := testSettings
	settings.CycleLength = 20
	for day := 1; day <= 60; day++ {
		info := cycle.CalculateInfo(settings, dayN(day))
		assert.NotEqual(t, cycle.PhaseLateLuteal, info.Phase)
	}
}

func TestCalculateInfo_Timezone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	settings := cycle.Settings{
		CycleLength:         28,
		LastPeriodStartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Timezone:            "Europe/Berlin",
	}

	// 23:30 UTC is already the next day in Berlin
	lateEvening := time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 8, cycle.DayOfCycle(settings, lateEvening))

	// crossing the DST switch (31 March) does not shift the day count
	afterDST := time.Date(2024, 4, 1, 10, 0, 0, 0, berlin)
	assert.Equal(t, 31, cycle.DaysSinceStart(settings, afterDST))
	assert.Equal(t, 4, cycle.DayOfCycle(settings, afterDST))
}

func TestDayOfCycleOnDate_KeepsCalendarDate(t *testing.T) {
	settings := cycle.Settings{
		CycleLength:         28,
		LastPeriodStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Timezone:            "America/New_York",
	}

	// date columns come back as midnight UTC, which is still the previous evening in New York
	injuryDate := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 8, cycle.DayOfCycleOnDate(settings, injuryDate))
	assert.Equal(t, cycle.PhaseFollicular, cycle.PhaseForDay(cycle.DayOfCycleOnDate(settings, injuryDate)))

	assert.Equal(t, 1, cycle.DayOfCycleOnDate(settings, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, cycle.DayOfCycleOnDate(settings, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, cycle.DayOfCycleOnDate(settings, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)))
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, testSettings.Validate())

	invalid := testSettings
	invalid.CycleLength = 0
	assert.ErrorIs(t, invalid.Validate(), cycle.ErrInvalidCycleLength)

	invalid = testSettings
	invalid.LastPeriodStartDate = time.Time{}
	assert.ErrorIs(t, invalid.Validate(), cycle.ErrMissingStartDate)
}

func TestSettings_LocationFallback(t *testing.T) {
	settings := testSettings
	settings.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, settings.Location())
	settings.Timezone = ""
	assert.Equal(t, time.UTC, settings.Location())
}

func TestDaysUntilNextPeriod(t *testing.T) {
	assert.Equal(t, 1, cycle.DaysUntilNextPeriod(testSettings, dayN(28)))
	assert.Equal(t, 0, cycle.DaysUntilNextPeriod(testSettings, dayN(29)))
	assert.Equal(t, -5, cycle.DaysUntilNextPeriod(testSettings, dayN(34)))
	assert.Equal(t, 27, cycle.DaysUntilNextPeriod(testSettings, dayN(2)))
}

func TestRecommendations(t *testing.T) {
	for _, phase := range cycle.Phases {
		recs := cycle.Recommendations(phase)
		require.NotEmpty(t, recs, phase.String())
		for _, r := range recs {
			assert.Contains(t, r, "cycle.recommendations.")
		}
	}
	assert.Empty(t, cycle.Recommendations(cycle.Phase("unknown")))
}
