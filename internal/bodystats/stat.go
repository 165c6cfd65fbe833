package bodystats

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrStatNotFound = errors.New("body stat not found")
	ErrInvalidStat  = errors.New("invalid body stat")
	ErrInvalidRange = errors.New("from after to")
)

var maxBodyFatPct = decimal.NewFromInt(100)

type Stat struct {
	ID         int              `json:"id"`
	UserID     int              `json:"userId"`
	LogDate    time.Time        `json:"logDate"`
	Weight     decimal.Decimal  `json:"weight"`
	Neck       *decimal.Decimal `json:"neck,omitempty"`
	Waist      *decimal.Decimal `json:"waist,omitempty"`
	Hips       *decimal.Decimal `json:"hips,omitempty"`
	BodyFatPct *decimal.Decimal `json:"bodyFatPct,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

func (s *Stat) Validate() error {
	if !s.Weight.IsPositive() {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidStat)
	}
	for name, girth := range map[string]*decimal.Decimal{"neck": s.Neck, "waist": s.Waist, "hips": s.Hips} {
		if girth != nil && !girth.IsPositive() {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidStat, name)
		}
	}
	if s.BodyFatPct != nil && (!s.BodyFatPct.IsPositive() || s.BodyFatPct.GreaterThanOrEqual(maxBodyFatPct)) {
		return fmt.Errorf("%w: body fat %s not in (0, 100)", ErrInvalidStat, s.BodyFatPct)
	}
	return nil
}

type TrendPoint struct {
	Date   time.Time       `json:"date"`
	Weight decimal.Decimal `json:"weight"`
}

type Trend struct {
	Points []TrendPoint     `json:"points"`
	First  *TrendPoint      `json:"first,omitempty"`
	Last   *TrendPoint      `json:"last,omitempty"`
	Delta  *decimal.Decimal `json:"delta,omitempty"`
}

// BuildTrend expects points ordered by date. Delta is last minus first, so a
// negative delta is weight lost.
func BuildTrend(points []TrendPoint) Trend {
	trend := Trend{Points: points}
	if len(points) == 0 {
		trend.Points = make([]TrendPoint, 0)
		return trend
	}

	first := points[0]
	last := points[len(points)-1]
	delta := last.Weight.Sub(first.Weight)
	trend.First = &first
	trend.Last = &last
	trend.Delta = &delta
	return trend
}
