package market

import (
	"math"
	"time"
)

// FlatForward is a yield curve with a single continuously compounded rate.
type FlatForward struct {
	reference time.Time
	rate      float64
	dc        DayCounter
}

func NewFlatForward(reference time.Time, rate float64, dc DayCounter) *FlatForward {
	return &FlatForward{reference: normalize(reference), rate: rate, dc: dc}
}

func (f *FlatForward) ReferenceDate() time.Time { return f.reference }

// TimeFromReference is the year fraction between the reference date and d.
func (f *FlatForward) TimeFromReference(d time.Time) float64 {
	return f.dc.YearFraction(f.reference, d)
}

func (f *FlatForward) Discount(d time.Time) float64 {
	return math.Exp(-f.rate * f.TimeFromReference(d))
}

// ZeroRate returns the continuously compounded zero rate implied by the
// discount factor at d.
func (f *FlatForward) ZeroRate(d time.Time) float64 {
	t := f.TimeFromReference(d)
	if t == 0 {
		return f.rate
	}
	return -math.Log(f.Discount(d)) / t
}
