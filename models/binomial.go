package models

import (
	"math"

	"github.com/pkg/errors"
)

// EarlyExercise describes when a tree may exercise before expiry. The zero
// value is European exercise.
type EarlyExercise struct {
	Anytime bool
	Times   []float64 // years from valuation, used when Anytime is false
}

// BinomialCRR prices an option on a Cox-Ross-Rubinstein tree. Discrete
// exercise times are snapped to the nearest step.
func BinomialCRR(in OptionInputs, steps int, ex EarlyExercise) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	if steps < 1 {
		return 0, errors.Wrapf(ErrInvalidInputs, "binomial tree needs at least one step, got %d", steps)
	}
	if in.T == 0 {
		return in.intrinsic(in.Spot), nil
	}
	if in.Volatility == 0 {
		return 0, errors.Wrap(ErrInvalidInputs, "binomial tree needs positive volatility")
	}

	dt := in.T / float64(steps)
	u := math.Exp(in.Volatility * math.Sqrt(dt))
	d := 1 / u
	p := (math.Exp((in.RiskFreeRate-in.DividendYield)*dt) - d) / (u - d)
	if p < 0 || p > 1 {
		return 0, errors.Wrapf(ErrInvalidInputs, "risk neutral probability %g outside [0, 1], use more steps", p)
	}
	disc := math.Exp(-in.RiskFreeRate * dt)

	exerciseAt := make(map[int]bool, len(ex.Times))
	for _, t := range ex.Times {
		step := int(math.Round(t / dt))
		if step >= 0 && step <= steps {
			exerciseAt[step] = true
		}
	}

	nodeSpot := func(i, j int) float64 {
		return in.Spot * math.Pow(u, float64(2*j-i))
	}

	values := make([]float64, steps+1)
	for j := 0; j <= steps; j++ {
		values[j] = in.intrinsic(nodeSpot(steps, j))
	}

	for i := steps - 1; i >= 0; i-- {
		early := ex.Anytime || exerciseAt[i]
		for j := 0; j <= i; j++ {
			v := disc * (p*values[j+1] + (1-p)*values[j])
			if early {
				v = math.Max(v, in.intrinsic(nodeSpot(i, j)))
			}
			values[j] = v
		}
	}

	return values[0], nil
}
