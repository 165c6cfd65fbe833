package validation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidThresholds = errors.New("invalid validation thresholds")

type Status string

const (
	StatusPR            Status = "pr"
	StatusOutlier       Status = "outlier"
	StatusSuspiciousLow Status = "suspicious_low"
	StatusNormal        Status = "normal"

	// StatusUnclassified is only reported by dry runs, for sets that would be
	// stored without a validation event. It is never persisted.
	StatusUnclassified Status = "unclassified"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPR, StatusOutlier, StatusSuspiciousLow, StatusNormal:
		return true
	default:
		return false
	}
}

// Flagged reports whether the status asks the user to double-check the entry.
func (s Status) Flagged() bool {
	return s == StatusOutlier || s == StatusSuspiciousLow
}

// Thresholds are fractions of the recent average. A weight above
// avg*(1+OutlierPct) is an outlier, one below avg*(1-SuspiciousLowPct) is
// suspiciously low.
type Thresholds struct {
	OutlierPct       decimal.Decimal
	SuspiciousLowPct decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		OutlierPct:       decimal.RequireFromString("0.15"),
		SuspiciousLowPct: decimal.RequireFromString("0.30"),
	}
}

func NewThresholds(outlierPct, suspiciousLowPct float64) (Thresholds, error) {
	t := Thresholds{
		OutlierPct:       decimal.NewFromFloat(outlierPct),
		SuspiciousLowPct: decimal.NewFromFloat(suspiciousLowPct),
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

func (t Thresholds) Validate() error {
	if t.OutlierPct.IsNegative() {
		return fmt.Errorf("%w: outlier pct %s is negative", ErrInvalidThresholds, t.OutlierPct)
	}
	if t.SuspiciousLowPct.IsNegative() || t.SuspiciousLowPct.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: suspicious low pct %s not in [0, 1)", ErrInvalidThresholds, t.SuspiciousLowPct)
	}
	return nil
}

// Baseline is what a new set is judged against. Both values are nil when the
// user has no history for the exercise.
type Baseline struct {
	PreviousMax *decimal.Decimal
	RecentAvg   *decimal.Decimal
}

type Result struct {
	Status      Status           `json:"status"`
	PreviousMax *decimal.Decimal `json:"previousMax,omitempty"`
	RecentAvg   *decimal.Decimal `json:"recentAvg,omitempty"`
	IsPR        bool             `json:"isPr"`
}

// Classify applies the rules in order: PR when the weight beats the previous
// max (or there is no previous max), then outlier above the recent average
// band, then suspicious low below it, otherwise normal. Bounds are strict.
func Classify(weight decimal.Decimal, baseline Baseline, t Thresholds) Result {
	res := Result{
		Status:      StatusNormal,
		PreviousMax: baseline.PreviousMax,
		RecentAvg:   baseline.RecentAvg,
	}

	if baseline.PreviousMax == nil || weight.GreaterThan(*baseline.PreviousMax) {
		res.Status = StatusPR
		res.IsPR = true
		return res
	}

	if baseline.RecentAvg == nil || !baseline.RecentAvg.IsPositive() {
		return res
	}

	one := decimal.NewFromInt(1)
	avg := *baseline.RecentAvg
	switch {
	case weight.GreaterThan(avg.Mul(one.Add(t.OutlierPct))):
		res.Status = StatusOutlier
	case weight.LessThan(avg.Mul(one.Sub(t.SuspiciousLowPct))):
		res.Status = StatusSuspiciousLow
	}

	return res
}

// Classifiable reports whether a logged set takes part in validation at all.
// Warm-ups and sets without a load are stored as they are.
func Classifiable(weight *decimal.Decimal, isWarmup bool) bool {
	return !isWarmup && weight != nil && weight.IsPositive()
}
