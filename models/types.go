package models

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrInvalidInputs = errors.New("invalid pricing inputs")
	ErrNoConvergence = errors.New("no convergence")
)

// OptionInputs are the model inputs in continuously compounded annual terms.
type OptionInputs struct {
	IsCall        bool
	Spot          float64
	Strike        float64
	T             float64 // years
	RiskFreeRate  float64
	DividendYield float64
	Volatility    float64
}

func (in OptionInputs) validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"spot", in.Spot},
		{"strike", in.Strike},
		{"time to expiry", in.T},
		{"risk-free rate", in.RiskFreeRate},
		{"dividend yield", in.DividendYield},
		{"volatility", in.Volatility},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.Wrapf(ErrInvalidInputs, "%s is not finite", f.name)
		}
	}

	switch {
	case in.Spot <= 0:
		return errors.Wrapf(ErrInvalidInputs, "spot must be positive, got %g", in.Spot)
	case in.Strike <= 0:
		return errors.Wrapf(ErrInvalidInputs, "strike must be positive, got %g", in.Strike)
	case in.Volatility < 0:
		return errors.Wrapf(ErrInvalidInputs, "volatility must not be negative, got %g", in.Volatility)
	case in.T < 0:
		return errors.Wrapf(ErrInvalidInputs, "time to expiry must not be negative, got %g", in.T)
	}
	return nil
}

func (in OptionInputs) intrinsic(spot float64) float64 {
	if in.IsCall {
		return math.Max(spot-in.Strike, 0)
	}
	return math.Max(in.Strike-spot, 0)
}

type BSMResult struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// Progress receives one tick per unit of completed work.
type Progress interface {
	Increment()
}
