package market

import (
	"math"
	"time"
)

// BlackConstantVol is a flat Black volatility surface: the same vol for
// every strike and expiry.
type BlackConstantVol struct {
	reference time.Time
	vol       float64
	dc        DayCounter
}

func NewBlackConstantVol(reference time.Time, vol float64, dc DayCounter) *BlackConstantVol {
	return &BlackConstantVol{reference: normalize(reference), vol: vol, dc: dc}
}

func (v *BlackConstantVol) ReferenceDate() time.Time { return v.reference }

func (v *BlackConstantVol) BlackVol(_ time.Time, _ float64) float64 {
	return v.vol
}

// BlackVariance is vol^2 * t where t is measured from the reference date.
func (v *BlackConstantVol) BlackVariance(d time.Time, strike float64) float64 {
	t := v.dc.YearFraction(v.reference, d)
	return math.Pow(v.BlackVol(d, strike), 2) * t
}
