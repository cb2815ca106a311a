package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"
)

const (
	bawTolerance     = 1e-6
	bawMaxIterations = 100

	bawFallbackTolerance = 1e-5

	closeEpsilon = 1000 * 2.220446049250313e-16
)

// BaroneAdesiWhaley prices an American option with the quadratic
// approximation of Barone-Adesi and Whaley (1987).
func BaroneAdesiWhaley(in OptionInputs) (float64, error) {
	return baroneAdesiWhaley(in, bawMaxIterations)
}

func baroneAdesiWhaley(in OptionInputs, maxIter int) (float64, error) {
	european, err := BlackScholesMerton(in)
	if err != nil {
		return 0, err
	}
	if in.T == 0 {
		return in.intrinsic(in.Spot), nil
	}

	rfDisc := math.Exp(-in.RiskFreeRate * in.T)
	divDisc := math.Exp(-in.DividendYield * in.T)
	variance := in.Volatility * in.Volatility * in.T

	// early exercise of a call is never optimal without dividends
	if in.IsCall && divDisc >= 1.0 {
		return european.Price, nil
	}
	if variance == 0 {
		return math.Max(european.Price, in.intrinsic(in.Spot)), nil
	}

	sc, err := bawCriticalPrice(in.IsCall, in.Strike, rfDisc, divDisc, variance, maxIter)
	if err != nil {
		return 0, err
	}

	stdDev := math.Sqrt(variance)
	forwardSc := sc * divDisc / rfDisc
	d1 := math.Log(forwardSc/in.Strike)/stdDev + 0.5*stdDev
	n := 2 * math.Log(divDisc/rfDisc) / variance
	k := bawK(rfDisc, variance)

	if in.IsCall {
		q := (-(n - 1) + math.Sqrt((n-1)*(n-1)+4*k)) / 2
		a := (sc / q) * (1 - divDisc*normCDF(d1))
		if in.Spot < sc {
			return european.Price + a*math.Pow(in.Spot/sc, q), nil
		}
		return in.Spot - in.Strike, nil
	}

	q := (-(n - 1) - math.Sqrt((n-1)*(n-1)+4*k)) / 2
	a := -(sc / q) * (1 - divDisc*normCDF(-d1))
	if in.Spot > sc {
		return european.Price + a*math.Pow(in.Spot/sc, q), nil
	}
	return in.Strike - in.Spot, nil
}

func bawK(rfDisc, variance float64) float64 {
	if closeTo(rfDisc, 1.0) {
		return 2.0 / variance
	}
	return -2.0 * math.Log(rfDisc) / (variance * (1.0 - rfDisc))
}

func closeTo(x, y float64) bool {
	diff := math.Abs(x - y)
	return diff <= closeEpsilon*math.Abs(x) && diff <= closeEpsilon*math.Abs(y)
}

// bawCriticalPrice finds the spot at which immediate exercise becomes
// optimal. It runs the Newton style fixed point iteration and falls back to
// a Nelder-Mead search on the residual when that does not converge.
func bawCriticalPrice(isCall bool, strike, rfDisc, divDisc, variance float64, maxIter int) (float64, error) {
	stdDev := math.Sqrt(variance)
	n := 2 * math.Log(divDisc/rfDisc) / variance
	m := -2 * math.Log(rfDisc) / variance
	bT := math.Log(divDisc / rfDisc)

	var si float64
	if isCall {
		qu := (-(n - 1) + math.Sqrt((n-1)*(n-1)+4*m)) / 2
		su := strike / (1 - 1/qu)
		h := -(bT + 2*stdDev) * strike / (su - strike)
		si = strike + (su-strike)*(1-math.Exp(h))
	} else {
		qu := (-(n - 1) - math.Sqrt((n-1)*(n-1)+4*m)) / 2
		su := strike / (1 - 1/qu)
		h := (bT - 2*stdDev) * strike / (strike - su)
		si = su + (strike-su)*math.Exp(h)
	}

	k := bawK(rfDisc, variance)
	var q float64
	if isCall {
		q = (-(n - 1) + math.Sqrt((n-1)*(n-1)+4*k)) / 2
	} else {
		q = (-(n - 1) - math.Sqrt((n-1)*(n-1)+4*k)) / 2
	}

	eval := func(s float64) (lhs, rhs, bi float64) {
		forward := s * divDisc / rfDisc
		d1 := math.Log(forward/strike)/stdDev + 0.5*stdDev
		black := blackValue(isCall, strike, forward, stdDev, rfDisc)
		if isCall {
			lhs = s - strike
			rhs = black + (1-divDisc*normCDF(d1))*s/q
			bi = divDisc*normCDF(d1)*(1-1/q) + (1-divDisc*normPDF(d1)/stdDev)/q
			return lhs, rhs, bi
		}
		lhs = strike - s
		rhs = black - (1-divDisc*normCDF(-d1))*s/q
		bi = -divDisc*normCDF(-d1)*(1-1/q) - (1+divDisc*normPDF(-d1)/stdDev)/q
		return lhs, rhs, bi
	}

	seed := si
	lhs, rhs, bi := eval(si)
	for i := 0; !(math.Abs(lhs-rhs)/strike <= bawTolerance); i++ {
		if i >= maxIter || math.IsNaN(si) || math.IsInf(si, 0) || si <= 0 {
			return bawMinimize(seed, strike, eval)
		}
		if isCall {
			si = (strike + rhs - bi*si) / (1 - bi)
		} else {
			si = (strike - rhs + bi*si) / (1 + bi)
		}
		lhs, rhs, bi = eval(si)
	}
	return si, nil
}

func bawMinimize(seed, strike float64, eval func(float64) (float64, float64, float64)) (float64, error) {
	if math.IsNaN(seed) || math.IsInf(seed, 0) || seed <= 0 {
		seed = strike
	}
	residual := func(s float64) float64 {
		lhs, rhs, _ := eval(s)
		return (lhs - rhs) / strike
	}

	// search in log space so every trial price stays positive
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r := residual(math.Exp(x[0]))
			return r * r
		},
	}
	result, err := optimize.Minimize(problem, []float64{math.Log(seed)}, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, errors.Wrapf(ErrNoConvergence, "critical price search: %v", err)
	}

	si := math.Exp(result.X[0])
	if r := residual(si); math.IsNaN(r) || math.Abs(r) > bawFallbackTolerance {
		return 0, errors.Wrapf(ErrNoConvergence, "critical price residual %g", r)
	}
	return si, nil
}
