package valuation

import (
	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/models"
	"github.com/pkg/errors"
)

type PriceFunc func(spec ContractSpec) (float64, error)

type GreeksFunc func(spec ContractSpec) (models.BSMResult, error)

// Method is a named pricing technique and the exercise styles it can value.
type Method struct {
	Name   string
	prices map[instruments.ExerciseKind]PriceFunc
	greeks GreeksFunc
}

func NewMethod(name string) *Method {
	return &Method{Name: name, prices: make(map[instruments.ExerciseKind]PriceFunc)}
}

// With registers fn for one exercise style and returns m for chaining.
func (m *Method) With(kind instruments.ExerciseKind, fn PriceFunc) *Method {
	m.prices[kind] = fn
	return m
}

// WithGreeks reports sensitivities for the European contract.
func (m *Method) WithGreeks(fn GreeksFunc) *Method {
	m.greeks = fn
	return m
}

func (m *Method) Supports(kind instruments.ExerciseKind) bool {
	_, ok := m.prices[kind]
	return ok
}

func (m *Method) Price(spec ContractSpec) (float64, error) {
	kind := spec.Option.Exercise.Kind()
	fn, ok := m.prices[kind]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedExercise, "%s cannot price %s exercise", m.Name, kind)
	}
	return fn(spec)
}

func BlackScholes(p Provider) *Method {
	m := NewMethod("Black-Scholes").With(instruments.European, p.PriceEuropean)
	if g, ok := p.(GreeksProvider); ok {
		m.WithGreeks(g.EuropeanGreeks)
	}
	return m
}

func BaroneAdesiWhaley(p Provider) *Method {
	return NewMethod("Barone-Adesi/Whaley").With(instruments.American, p.PriceAmerican)
}

// DefaultMethods are the rows every report carries.
func DefaultMethods(p Provider) []*Method {
	return []*Method{BlackScholes(p), BaroneAdesiWhaley(p)}
}

// Binomial values all three exercise styles on a Cox-Ross-Rubinstein tree.
func Binomial(steps int) *Method {
	tree := func(early func(ContractSpec) models.EarlyExercise) PriceFunc {
		return func(spec ContractSpec) (float64, error) {
			in, err := spec.Inputs()
			if err != nil {
				return 0, err
			}
			return models.BinomialCRR(in, steps, early(spec))
		}
	}

	return NewMethod("Binomial Cox-Ross-Rubinstein").
		With(instruments.European, tree(func(ContractSpec) models.EarlyExercise {
			return models.EarlyExercise{}
		})).
		With(instruments.Bermudan, tree(func(spec ContractSpec) models.EarlyExercise {
			return models.EarlyExercise{Times: spec.ExerciseTimes()}
		})).
		With(instruments.American, tree(func(ContractSpec) models.EarlyExercise {
			return models.EarlyExercise{Anytime: true}
		}))
}

// ProgressFunc hands out a progress sink for total units of work and a
// function to call once the work is over.
type ProgressFunc func(total int) (models.Progress, func())

type MonteCarloConfig struct {
	Paths    int
	Seed     uint64
	Workers  int
	Progress ProgressFunc
}

// MonteCarlo estimates European values by simulation.
func MonteCarlo(cfg MonteCarloConfig) *Method {
	return NewMethod("MC (crude)").With(instruments.European, func(spec ContractSpec) (float64, error) {
		in, err := spec.Inputs()
		if err != nil {
			return 0, err
		}

		mc := models.MonteCarlo{Paths: cfg.Paths, Seed: cfg.Seed, Workers: cfg.Workers}
		if cfg.Progress != nil {
			progress, done := cfg.Progress(models.MonteCarloChunks)
			defer done()
			mc.Progress = progress
		}

		res, err := mc.European(in)
		if err != nil {
			return 0, err
		}
		return res.Price, nil
	})
}
