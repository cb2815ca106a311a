package market

import (
	"fmt"
	"time"
)

// Date returns midnight UTC of the given calendar day. All dates in this
// package are normalised this way so that day arithmetic is exact.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func normalize(d time.Time) time.Time {
	return Date(d.Year(), d.Month(), d.Day())
}

// AddDays shifts d by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	d = normalize(d)
	return Date(d.Year(), d.Month(), d.Day()+n)
}

// AddMonths shifts d by n months. When the target month is shorter than the
// day of month, the result is clamped to the last day of that month.
func AddMonths(d time.Time, n int) time.Time {
	d = normalize(d)
	first := Date(d.Year(), d.Month()+time.Month(n), 1)
	last := daysIn(first.Year(), first.Month())
	day := d.Day()
	if day > last {
		day = last
	}
	return Date(first.Year(), first.Month(), day)
}

// DaysBetween counts calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((normalize(end).Unix() - normalize(start).Unix()) / secondsPerDay)
}

func daysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// FormatLong renders a date as "May 17th, 2022".
func FormatLong(d time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", d.Month(), d.Day(), ordinalSuffix(d.Day()), d.Year())
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
