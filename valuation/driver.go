package valuation

import (
	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Row is one line of the valuation table. Nil values were not computed.
// Greeks belong to the European contract.
type Row struct {
	Method   string
	European *float64
	Bermudan *float64
	American *float64
	Greeks   *models.BSMResult
}

func (r Row) Value(kind instruments.ExerciseKind) *float64 {
	switch kind {
	case instruments.European:
		return r.European
	case instruments.Bermudan:
		return r.Bermudan
	case instruments.American:
		return r.American
	}
	return nil
}

func (r *Row) set(kind instruments.ExerciseKind, v float64) {
	switch kind {
	case instruments.European:
		r.European = &v
	case instruments.Bermudan:
		r.Bermudan = &v
	case instruments.American:
		r.American = &v
	}
}

type Driver struct {
	OptionType instruments.OptionType
	methods    []*Method
	log        *zap.SugaredLogger
}

// NewDriver values puts with the given methods, in order.
func NewDriver(log *zap.SugaredLogger, methods ...*Method) *Driver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{OptionType: instruments.Put, methods: methods, log: log}
}

// BuildContracts creates the European, Bermudan and American contracts on
// one payoff, in that order.
func BuildContracts(env *market.Environment, optionType instruments.OptionType) ([]instruments.VanillaOption, error) {
	payoff := instruments.PlainVanillaPayoff{Type: optionType, Strike: env.Scenario.Strike}

	bermudan, err := instruments.NewBermudanExercise(env.BermudanDates)
	if err != nil {
		return nil, err
	}
	american, err := instruments.NewAmericanExercise(env.Settlement, env.Maturity)
	if err != nil {
		return nil, err
	}

	return []instruments.VanillaOption{
		instruments.NewVanillaOption(payoff, instruments.NewEuropeanExercise(env.Maturity)),
		instruments.NewVanillaOption(payoff, bermudan),
		instruments.NewVanillaOption(payoff, american),
	}, nil
}

// Value prices every contract each method supports. The first error stops
// the run and no rows are returned.
func (d *Driver) Value(env *market.Environment) ([]Row, error) {
	if env == nil {
		return nil, errors.New("no market environment")
	}
	contracts, err := BuildContracts(env, d.OptionType)
	if err != nil {
		return nil, errors.Wrap(err, "build contracts")
	}

	rows := make([]Row, 0, len(d.methods))
	for _, m := range d.methods {
		row := Row{Method: m.Name}
		for _, opt := range contracts {
			kind := opt.Exercise.Kind()
			if !m.Supports(kind) {
				continue
			}
			v, err := m.Price(ContractSpec{Option: opt, Env: env})
			if err != nil {
				return nil, errors.Wrapf(err, "%s %s", m.Name, kind)
			}
			d.log.Debugw("priced contract", "method", m.Name, "exercise", kind.String(), "value", v)
			row.set(kind, v)

			if kind == instruments.European && m.greeks != nil {
				g, err := m.greeks(ContractSpec{Option: opt, Env: env})
				if err != nil {
					return nil, errors.Wrapf(err, "%s greeks", m.Name)
				}
				row.Greeks = &g
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
