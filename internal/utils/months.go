package utils

import "time"

// MonthKey returns the calendar month bucket for a date, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthsBetween returns the calendar month difference between two dates,
// ignoring the day of month. May be negative if end precedes start.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}
