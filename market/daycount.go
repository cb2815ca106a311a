package market

import "time"

// DayCounter converts a pair of dates into a year fraction.
type DayCounter interface {
	Name() string
	YearFraction(start, end time.Time) float64
}

// Actual365Fixed counts actual days over a 365-day year.
type Actual365Fixed struct{}

func (Actual365Fixed) Name() string { return "Actual/365 (Fixed)" }

func (Actual365Fixed) YearFraction(start, end time.Time) float64 {
	return float64(DaysBetween(start, end)) / 365.0
}
