package progress

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SetRow is one baseline set as read from the database.
type SetRow struct {
	SessionID   int
	ExerciseID  int
	SessionDate time.Time
	Weight      *decimal.Decimal
	Reps        int
}

type Summary struct {
	MaxWeight    decimal.Decimal `json:"maxWeight"`
	AvgWeight    decimal.Decimal `json:"avgWeight"`
	TotalVolume  decimal.Decimal `json:"totalVolume"`
	SetCount     int             `json:"setCount"`
	WorkoutCount int             `json:"workoutCount"`
}

type Bucket struct {
	PeriodStart time.Time `json:"periodStart"`
	Summary
}

// Rollup aggregates the rows: max and average weight, total volume
// (weight * reps) and the number of distinct sessions. Rows without a weight
// are skipped.
func Rollup(rows []SetRow) Summary {
	var s Summary
	sum := decimal.Zero
	sessions := make(map[int]struct{})

	for _, row := range rows {
		if row.Weight == nil {
			continue
		}
		w := *row.Weight
		if s.SetCount == 0 || w.GreaterThan(s.MaxWeight) {
			s.MaxWeight = w
		}
		sum = sum.Add(w)
		s.TotalVolume = s.TotalVolume.Add(w.Mul(decimal.NewFromInt(int64(row.Reps))))
		s.SetCount++
		sessions[row.SessionID] = struct{}{}
	}

	if s.SetCount > 0 {
		s.AvgWeight = sum.Div(decimal.NewFromInt(int64(s.SetCount))).Round(2)
	}
	s.WorkoutCount = len(sessions)

	return s
}

// RollupByPeriod groups rows by the start of their period and rolls up each
// group. Buckets are sorted by period start.
func RollupByPeriod(rows []SetRow, period Period) []Bucket {
	groups := make(map[time.Time][]SetRow)
	for _, row := range rows {
		if row.Weight == nil {
			continue
		}
		start := period.Truncate(row.SessionDate)
		groups[start] = append(groups[start], row)
	}

	buckets := make([]Bucket, 0, len(groups))
	for start, groupRows := range groups {
		buckets = append(buckets, Bucket{
			PeriodStart: start,
			Summary:     Rollup(groupRows),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})

	return buckets
}

// Entry is a stored progress row, one per user, exercise and period start.
type Entry struct {
	ID           int             `json:"id"`
	UserID       int             `json:"userId"`
	ExerciseID   int             `json:"exerciseId"`
	PeriodType   Period          `json:"periodType"`
	PeriodStart  time.Time       `json:"periodStart"`
	MaxWeight    decimal.Decimal `json:"maxWeight"`
	AvgWeight    decimal.Decimal `json:"avgWeight"`
	TotalVolume  decimal.Decimal `json:"totalVolume"`
	WorkoutCount int             `json:"workoutCount"`
}

// BuildEntries computes the progress rows of one user for a period, per
// exercise and period start.
func BuildEntries(userID int, rows []SetRow, period Period) []Entry {
	byExercise := make(map[int][]SetRow)
	for _, row := range rows {
		byExercise[row.ExerciseID] = append(byExercise[row.ExerciseID], row)
	}

	exerciseIDs := make([]int, 0, len(byExercise))
	for id := range byExercise {
		exerciseIDs = append(exerciseIDs, id)
	}
	sort.Ints(exerciseIDs)

	var entries []Entry
	for _, exerciseID := range exerciseIDs {
		for _, b := range RollupByPeriod(byExercise[exerciseID], period) {
			entries = append(entries, Entry{
				UserID:       userID,
				ExerciseID:   exerciseID,
				PeriodType:   period,
				PeriodStart:  b.PeriodStart,
				MaxWeight:    b.MaxWeight,
				AvgWeight:    b.AvgWeight,
				TotalVolume:  b.TotalVolume,
				WorkoutCount: b.WorkoutCount,
			})
		}
	}
	return entries
}
