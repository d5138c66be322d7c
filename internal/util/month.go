package util

import "time"

// MonthRange returns the first and last day of the month containing t, in UTC
func MonthRange(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.UTC().Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysInMonth returns the number of days in the month containing t
func DaysInMonth(t time.Time) int {
	year, month, _ := t.UTC().Date()
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
