package progress

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	RecommendationStalled   = "stalled_lift"
	RecommendationNeglected = "neglected_muscle_group"

	// fewer session exercises than this over the window means neglected
	minMuscleGroupHits = 3
)

var (
	stallTolerance = decimal.RequireFromString("0.1")
	stallIncrement = decimal.RequireFromString("2.5")
)

type Recommendation struct {
	Type          string           `json:"type"`
	ExerciseID    int              `json:"exerciseId,omitempty"`
	MuscleGroup   string           `json:"muscleGroup,omitempty"`
	CurrentMax    *decimal.Decimal `json:"currentMax,omitempty"`
	SuggestedLoad *decimal.Decimal `json:"suggestedLoad,omitempty"`
	Message       string           `json:"message"`
}

// StalledLifts looks at the two latest weekly rows of every exercise. When the
// max weight moved less than the tolerance, the next load is suggested.
func StalledLifts(weekly []Entry, exerciseNames map[int]string) []Recommendation {
	byExercise := make(map[int][]Entry)
	for _, e := range weekly {
		byExercise[e.ExerciseID] = append(byExercise[e.ExerciseID], e)
	}

	exerciseIDs := make([]int, 0, len(byExercise))
	for id := range byExercise {
		exerciseIDs = append(exerciseIDs, id)
	}
	sort.Ints(exerciseIDs)

	var recs []Recommendation
	for _, id := range exerciseIDs {
		entries := byExercise[id]
		if len(entries) < 2 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].PeriodStart.After(entries[j].PeriodStart)
		})
		cur, prev := entries[0].MaxWeight, entries[1].MaxWeight
		if cur.Sub(prev).Abs().GreaterThanOrEqual(stallTolerance) {
			continue
		}

		name := exerciseNames[id]
		if name == "" {
			name = fmt.Sprintf("exercise %d", id)
		}
		current := cur
		suggested := cur.Add(stallIncrement)
		recs = append(recs, Recommendation{
			Type:          RecommendationStalled,
			ExerciseID:    id,
			CurrentMax:    &current,
			SuggestedLoad: &suggested,
			Message:       fmt.Sprintf("Progress on %s has stalled at %s kg. Try %s kg next week.", name, cur.String(), suggested.String()),
		})
	}
	return recs
}

// NeglectedMuscleGroups lists catalog groups trained fewer than three times
// in the window.
func NeglectedMuscleGroups(groups []string, counts map[string]int) []Recommendation {
	sorted := append([]string(nil), groups...)
	sort.Strings(sorted)

	var recs []Recommendation
	for _, group := range sorted {
		if counts[group] >= minMuscleGroupHits {
			continue
		}
		recs = append(recs, Recommendation{
			Type:        RecommendationNeglected,
			MuscleGroup: group,
			Message:     fmt.Sprintf("Add 1-2 more %s exercises per week.", group),
		})
	}
	return recs
}
