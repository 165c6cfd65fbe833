package progress

import "time"

// Streak counts consecutive days with a completed session, going back from
// today. A today without a session does not break it, counting then starts
// at yesterday.
func Streak(sessionDays []time.Time, today time.Time) int {
	days := make(map[time.Time]bool, len(sessionDays))
	for _, d := range sessionDays {
		days[PeriodDaily.Truncate(d)] = true
	}

	day := PeriodDaily.Truncate(today)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
