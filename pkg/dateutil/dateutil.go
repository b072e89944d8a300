package dateutil

import (
	"time"
)

// MonthLabelFormat is the layout used for chart labels.
const MonthLabelFormat = "Jan 2006"

// MonthIndex returns the absolute calendar month number (year*12 + month).
func MonthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}

// MonthsBetween returns the signed number of calendar months from one date to
// another. Days are ignored: Jan 31 to Feb 1 is one month.
func MonthsBetween(fromDate, toDate time.Time) int {
	return MonthIndex(toDate) - MonthIndex(fromDate)
}

// MonthsElapsed is MonthsBetween clamped at zero. A zero fromDate means the
// start is unknown and nothing has elapsed.
func MonthsElapsed(fromDate, toDate time.Time) int {
	if fromDate.IsZero() {
		return 0
	}
	if m := MonthsBetween(fromDate, toDate); m > 0 {
		return m
	}
	return 0
}

// AddMonths adds calendar months to a date, clamping the day to the end of the
// target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(date time.Time, months int) time.Time {
	if date.IsZero() {
		return date
	}
	first := time.Date(date.Year(), date.Month(), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	target := first.AddDate(0, months, 0)
	day := date.Day()
	if last := DaysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return target.AddDate(0, 0, day-1)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthLabel renders a chart label such as "Mar 2025".
func MonthLabel(date time.Time) string {
	return date.Format(MonthLabelFormat)
}
