package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.UnitNormal

func normCDF(x float64) float64 { return stdNormal.CDF(x) }

func normPDF(x float64) float64 { return stdNormal.Prob(x) }

// BlackScholesMerton prices a European option on a dividend paying asset
// and returns its first order greeks. Theta is per year.
func BlackScholesMerton(in OptionInputs) (BSMResult, error) {
	if err := in.validate(); err != nil {
		return BSMResult{}, err
	}

	riskFreeDiscount := math.Exp(-in.RiskFreeRate * in.T)
	dividendDiscount := math.Exp(-in.DividendYield * in.T)
	forward := in.Spot * dividendDiscount / riskFreeDiscount

	if in.T == 0 {
		return BSMResult{Price: in.intrinsic(in.Spot)}, nil
	}
	stdDev := in.Volatility * math.Sqrt(in.T)
	if stdDev == 0 {
		return BSMResult{Price: riskFreeDiscount * in.intrinsic(forward)}, nil
	}

	return blackGreeks(in, forward, stdDev, riskFreeDiscount, dividendDiscount), nil
}

// blackValue is the undiscounted-forward Black formula times the discount
// factor. Inputs are assumed valid with a positive standard deviation.
func blackValue(isCall bool, strike, forward, stdDev, discount float64) float64 {
	d1 := math.Log(forward/strike)/stdDev + 0.5*stdDev
	d2 := d1 - stdDev
	if isCall {
		return discount * (forward*normCDF(d1) - strike*normCDF(d2))
	}
	return discount * (strike*normCDF(-d2) - forward*normCDF(-d1))
}

func blackGreeks(in OptionInputs, forward, stdDev, rfDisc, divDisc float64) BSMResult {
	S, K, T := in.Spot, in.Strike, in.T
	d1 := math.Log(forward/K)/stdDev + 0.5*stdDev
	d2 := d1 - stdDev
	sqrtT := math.Sqrt(T)

	price := blackValue(in.IsCall, K, forward, stdDev, rfDisc)
	gamma := divDisc * normPDF(d1) / (S * stdDev)
	vega := S * divDisc * normPDF(d1) * sqrtT
	decay := -S * divDisc * normPDF(d1) * in.Volatility / (2 * sqrtT)

	var delta, theta, rho float64
	if in.IsCall {
		delta = divDisc * normCDF(d1)
		theta = decay - in.RiskFreeRate*K*rfDisc*normCDF(d2) + in.DividendYield*S*divDisc*normCDF(d1)
		rho = K * T * rfDisc * normCDF(d2)
	} else {
		delta = -divDisc * normCDF(-d1)
		theta = decay + in.RiskFreeRate*K*rfDisc*normCDF(-d2) - in.DividendYield*S*divDisc*normCDF(-d1)
		rho = -K * T * rfDisc * normCDF(-d2)
	}

	return BSMResult{
		Price: price,
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}
}
