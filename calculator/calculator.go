package calculator

import (
	"io"

	"github.com/bcdannyboy/optcalc/config"
	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/report"
	"github.com/bcdannyboy/optcalc/valuation"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Calculator runs Select, Build and Value for one underlying price. It holds
// no per-run state and may be shared between goroutines.
type Calculator struct {
	driver   *valuation.Driver
	schedule market.Schedule
	log      *zap.SugaredLogger
}

type Option func(*options)

type options struct {
	provider valuation.Provider
	schedule market.Schedule
	progress io.Writer
}

// WithProvider swaps the pricing provider behind the default methods.
func WithProvider(p valuation.Provider) Option {
	return func(o *options) { o.provider = p }
}

func WithSchedule(s market.Schedule) Option {
	return func(o *options) { o.schedule = s }
}

// WithProgress draws a progress bar on w while simulations run.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

func New(cfg config.Config, log *zap.SugaredLogger, opts ...Option) *Calculator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	o := options{provider: valuation.AnalyticProvider{}, schedule: market.DefaultSchedule()}
	for _, opt := range opts {
		opt(&o)
	}

	methods := valuation.DefaultMethods(o.provider)
	if cfg.ExtendedMethods {
		mc := valuation.MonteCarloConfig{
			Paths: cfg.MonteCarlo.Paths,
			Seed:  cfg.MonteCarlo.Seed,
		}
		if o.progress != nil {
			mc.Progress = progressBar(o.progress)
		}
		methods = append(methods, valuation.Binomial(cfg.BinomialSteps), valuation.MonteCarlo(mc))
	}

	return &Calculator{
		driver:   valuation.NewDriver(log, methods...),
		schedule: o.schedule,
		log:      log,
	}
}

// Result is everything needed to render a report.
type Result struct {
	Env        *market.Environment
	OptionType instruments.OptionType
	Rows       []valuation.Row
}

func (c *Calculator) Price(underlying float64) (*Result, error) {
	scenario := market.SelectScenario(underlying)
	c.log.Debugw("selected scenario",
		"underlying", scenario.Underlying,
		"strike", scenario.Strike,
		"rate", scenario.RiskFreeRate,
		"dividend", scenario.DividendYield,
		"vol", scenario.Volatility,
	)

	env, err := market.BuildEnvironment(scenario, c.schedule)
	if err != nil {
		return nil, errors.Wrap(err, "build market environment")
	}
	c.log.Debugw("built environment",
		"evaluation", env.EvaluationDate.Format("2006-01-02"),
		"settlement", env.Settlement.Format("2006-01-02"),
		"maturity", env.Maturity.Format("2006-01-02"),
		"calendar", env.Calendar.Name(),
		"daycount", env.DayCounter.Name(),
	)

	rows, err := c.driver.Value(env)
	if err != nil {
		return nil, err
	}
	return &Result{Env: env, OptionType: c.driver.OptionType, Rows: rows}, nil
}

// Render writes the console report. It starts with a newline that ends the
// prompt line.
func (r *Result) Render(w io.Writer) error {
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, "write report")
	}
	return report.Write(w, r.Env, r.OptionType, r.Rows)
}

func (r *Result) Document() report.Document {
	return report.BuildDocument(r.Env, r.OptionType, r.Rows)
}
