package progress

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidRange  = errors.New("invalid date range")
)

type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

var AllPeriods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly}

func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "":
		return PeriodWeekly, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPeriod, raw)
	}
}

// ParsePeriods parses a comma separated list, empty means weekly only.
func ParsePeriods(raw string) ([]Period, error) {
	if strings.TrimSpace(raw) == "" {
		return []Period{PeriodWeekly}, nil
	}
	if strings.TrimSpace(raw) == "all" {
		return AllPeriods, nil
	}

	var periods []Period
	seen := make(map[Period]bool)
	for _, part := range strings.Split(raw, ",") {
		p, err := ParsePeriod(part)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	return periods, nil
}

// Truncate returns the UTC midnight the period containing t starts at.
// Weeks start on Monday.
func (p Period) Truncate(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case PeriodDaily:
		return day
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PeriodQuarterly:
		month := ((day.Month()-1)/3)*3 + 1
		return time.Date(day.Year(), month, 1, 0, 0, 0, 0, time.UTC)
	case PeriodYearly:
		return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}
