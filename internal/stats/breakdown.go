package stats

import (
	"sort"
	"time"

	"github.com/2beens/cragjournal/internal/journal"
)

type TypeStats struct {
	Type       journal.WorkoutType `json:"type"`
	Count      int                 `json:"count"`
	Percentage float64             `json:"percentage"`
	// Frequency is the number of workouts per week in the range
	Frequency float64    `json:"frequency"`
	LastDate  *time.Time `json:"lastDate,omitempty"`
}

type TagStats struct {
	TagID      int     `json:"tagId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Frequency  float64 `json:"frequency"`
	// WorkoutTypes the tag was used with, in modality order
	WorkoutTypes []journal.WorkoutType `json:"workoutTypes"`
	LastDate     *time.Time            `json:"lastDate,omitempty"`
}

type VolumeStats struct {
	Volume     journal.TrainingVolume `json:"volume"`
	Count      int                    `json:"count"`
	Percentage float64                `json:"percentage"`
}

// typeStats lists the modalities present in the range, most frequent first.
func typeStats(workouts []journal.Workout, tr TimeRange) []TypeStats {
	byType := make(map[journal.WorkoutType]*TypeStats)
	for _, w := range workouts {
		ts, ok := byType[w.Type]
		if !ok {
			ts = &TypeStats{Type: w.Type}
			byType[w.Type] = ts
		}
		ts.Count++
		ts.LastDate = latest(ts.LastDate, w.StartTime)
	}

	weeks := tr.Weeks()
	result := make([]TypeStats, 0, len(byType))
	for _, ts := range byType {
		ts.Percentage = percentage(ts.Count, len(workouts))
		ts.Frequency = ratio(ts.Count, weeks)
		result = append(result, *ts)
	}

	order := modalityOrder()
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		oi, oj := order[result[i].Type], order[result[j].Type]
		if oi != oj {
			return oi < oj
		}
		return result[i].Type < result[j].Type
	})

	return result
}

// tagStats covers every known tag (zero counts included) plus tags only referenced by workouts.
// Percentages are relative to the workouts having at least one tag.
func tagStats(workouts []journal.Workout, tags []journal.Tag, tr TimeRange) []TagStats {
	byID := make(map[int]*TagStats, len(tags))
	ordered := make([]*TagStats, 0, len(tags))
	for _, t := range tags {
		if _, ok := byID[t.ID]; ok {
			continue
		}
		ts := &TagStats{TagID: t.ID, Name: t.Name, Color: t.Color}
		byID[t.ID] = ts
		ordered = append(ordered, ts)
	}

	tagTypes := make(map[int]map[journal.WorkoutType]struct{})
	taggedWorkouts := 0
	for _, w := range workouts {
		if len(w.Tags) == 0 {
			continue
		}
		taggedWorkouts++

		seen := make(map[int]struct{}, len(w.Tags))
		for _, ref := range w.Tags {
			if _, dup := seen[ref.ID]; dup {
				continue
			}
			seen[ref.ID] = struct{}{}

			ts, ok := byID[ref.ID]
			if !ok {
				ts = &TagStats{TagID: ref.ID, Name: ref.Name}
				byID[ref.ID] = ts
				ordered = append(ordered, ts)
			}
			ts.Count++
			ts.LastDate = latest(ts.LastDate, w.StartTime)

			if tagTypes[ref.ID] == nil {
				tagTypes[ref.ID] = make(map[journal.WorkoutType]struct{})
			}
			tagTypes[ref.ID][w.Type] = struct{}{}
		}
	}

	weeks := tr.Weeks()
	order := modalityOrder()
	result := make([]TagStats, 0, len(ordered))
	for _, ts := range ordered {
		ts.Percentage = percentage(ts.Count, taggedWorkouts)
		ts.Frequency = ratio(ts.Count, weeks)
		ts.WorkoutTypes = make([]journal.WorkoutType, 0, len(tagTypes[ts.TagID]))
		for wt := range tagTypes[ts.TagID] {
			ts.WorkoutTypes = append(ts.WorkoutTypes, wt)
		}
		sort.Slice(ts.WorkoutTypes, func(i, j int) bool {
			oi, oj := order[ts.WorkoutTypes[i]], order[ts.WorkoutTypes[j]]
			if oi != oj {
				return oi < oj
			}
			return ts.WorkoutTypes[i] < ts.WorkoutTypes[j]
		})
		result = append(result, *ts)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// volumeStats always returns TR1..TR5; the percentage base excludes workouts without a volume.
func volumeStats(workouts []journal.Workout) []VolumeStats {
	counts := make(map[journal.TrainingVolume]int, len(journal.TrainingVolumes))
	withVolume := 0
	for _, w := range workouts {
		if w.TrainingVolume == nil {
			continue
		}
		counts[*w.TrainingVolume]++
		withVolume++
	}

	result := make([]VolumeStats, 0, len(journal.TrainingVolumes))
	for _, v := range journal.TrainingVolumes {
		result = append(result, VolumeStats{
			Volume:     v,
			Count:      counts[v],
			Percentage: percentage(counts[v], withVolume),
		})
	}
	return result
}

// unknown modalities sort after the known ones
func modalityOrder() map[journal.WorkoutType]int {
	order := make(map[journal.WorkoutType]int, len(journal.WorkoutTypes))
	for i, wt := range journal.WorkoutTypes {
		order[wt] = i + 1
	}
	return order
}

func latest(current *time.Time, t time.Time) *time.Time {
	if current == nil || t.After(*current) {
		return &t
	}
	return current
}
