package market

// highPriceThreshold selects the high-price scenario. Inclusive.
const highPriceThreshold = 100.0

// Scenario is the set of market parameters derived from the underlying price.
type Scenario struct {
	Underlying    float64
	Strike        float64
	DividendYield float64
	RiskFreeRate  float64
	Volatility    float64
}

// SelectScenario picks strike, dividend yield, risk-free rate and volatility
// for the given underlying price. Any value is accepted, including zero and
// negative prices.
func SelectScenario(underlying float64) Scenario {
	if underlying >= highPriceThreshold {
		return Scenario{
			Underlying:    underlying,
			Strike:        200,
			DividendYield: 0.01,
			RiskFreeRate:  0.10,
			Volatility:    0.50,
		}
	}

	return Scenario{
		Underlying:    underlying,
		Strike:        100,
		DividendYield: 0.00,
		RiskFreeRate:  0.07,
		Volatility:    0.20,
	}
}
