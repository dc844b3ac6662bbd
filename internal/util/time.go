package util

import "time"

// TodayUTC returns the current UTC calendar date as an ISO date string.
// Quota accounting is keyed by this value.
func TodayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

// NextUTCMidnight returns the instant the daily quota resets.
func NextUTCMidnight() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
}

// StartOfDayUTC truncates t to the start of its UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatUTC(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}
