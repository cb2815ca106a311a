package valuation

import (
	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/models"
	"github.com/pkg/errors"
)

var ErrUnsupportedExercise = errors.New("unsupported exercise")

// ContractSpec is one option together with the market it is valued in.
type ContractSpec struct {
	Option instruments.VanillaOption
	Env    *market.Environment
}

// Inputs reads the model inputs off the environment at the option's last
// exercise date.
func (c ContractSpec) Inputs() (models.OptionInputs, error) {
	if c.Env == nil {
		return models.OptionInputs{}, errors.New("contract has no market environment")
	}
	expiry := c.Option.Exercise.LastDate()
	strike := c.Option.Payoff.Strike
	return models.OptionInputs{
		IsCall:        c.Option.IsCall(),
		Spot:          c.Env.Spot(),
		Strike:        strike,
		T:             c.Env.TimeTo(expiry),
		RiskFreeRate:  c.Env.RiskFree.ZeroRate(expiry),
		DividendYield: c.Env.Dividend.ZeroRate(expiry),
		Volatility:    c.Env.Volatility.BlackVol(expiry, strike),
	}, nil
}

// ExerciseTimes converts the exercise dates into year fractions from
// settlement.
func (c ContractSpec) ExerciseTimes() []float64 {
	dates := c.Option.Exercise.Dates()
	times := make([]float64, 0, len(dates))
	for _, d := range dates {
		times = append(times, c.Env.TimeTo(d))
	}
	return times
}

// Provider is the pricing capability the driver depends on.
type Provider interface {
	PriceEuropean(spec ContractSpec) (float64, error)
	PriceAmerican(spec ContractSpec) (float64, error)
}

// GreeksProvider is implemented by providers that can report sensitivities
// for European exercise alongside the price.
type GreeksProvider interface {
	EuropeanGreeks(spec ContractSpec) (models.BSMResult, error)
}

// AnalyticProvider prices with closed forms: Black-Scholes-Merton for
// European exercise and Barone-Adesi/Whaley for American exercise.
type AnalyticProvider struct{}

func (p AnalyticProvider) PriceEuropean(spec ContractSpec) (float64, error) {
	res, err := p.EuropeanGreeks(spec)
	if err != nil {
		return 0, err
	}
	return res.Price, nil
}

func (AnalyticProvider) EuropeanGreeks(spec ContractSpec) (models.BSMResult, error) {
	in, err := inputsFor(spec, instruments.European)
	if err != nil {
		return models.BSMResult{}, err
	}
	return models.BlackScholesMerton(in)
}

func (AnalyticProvider) PriceAmerican(spec ContractSpec) (float64, error) {
	in, err := inputsFor(spec, instruments.American)
	if err != nil {
		return 0, err
	}
	return models.BaroneAdesiWhaley(in)
}

func inputsFor(spec ContractSpec, kind instruments.ExerciseKind) (models.OptionInputs, error) {
	if got := spec.Option.Exercise.Kind(); got != kind {
		return models.OptionInputs{}, errors.Wrapf(ErrUnsupportedExercise, "%s option priced as %s", got, kind)
	}
	return spec.Inputs()
}
