package valuation

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environment(t *testing.T, underlying float64) *market.Environment {
	t.Helper()
	env, err := market.BuildEnvironment(market.SelectScenario(underlying), market.DefaultSchedule())
	require.NoError(t, err)
	return env
}

func TestBuildContracts(t *testing.T) {
	env := environment(t, 150)
	contracts, err := BuildContracts(env, instruments.Put)
	require.NoError(t, err)
	require.Len(t, contracts, 3)

	for i, kind := range instruments.ExerciseKinds {
		assert.Equal(t, kind, contracts[i].Exercise.Kind())
		assert.Equal(t, 200.0, contracts[i].Payoff.Strike)
		assert.Equal(t, instruments.Put, contracts[i].Payoff.Type)
		assert.Equal(t, env.Maturity, contracts[i].Exercise.LastDate())
	}
	assert.Equal(t, env.BermudanDates, contracts[1].Exercise.Dates())
}

func TestContractSpecInputs(t *testing.T) {
	env := environment(t, 150)
	contracts, err := BuildContracts(env, instruments.Put)
	require.NoError(t, err)

	spec := ContractSpec{Option: contracts[0], Env: env}
	in, err := spec.Inputs()
	require.NoError(t, err)
	assert.False(t, in.IsCall)
	assert.Equal(t, 150.0, in.Spot)
	assert.Equal(t, 200.0, in.Strike)
	assert.Equal(t, 1.0, in.T)
	assert.InDelta(t, 0.10, in.RiskFreeRate, 1e-14)
	assert.InDelta(t, 0.01, in.DividendYield, 1e-14)
	assert.Equal(t, 0.50, in.Volatility)

	times := ContractSpec{Option: contracts[1], Env: env}.ExerciseTimes()
	require.Len(t, times, 4)
	assert.InDelta(t, 92.0/365, times[0], 1e-15)
	assert.Equal(t, 1.0, times[3])

	_, err = ContractSpec{Option: contracts[0]}.Inputs()
	require.Error(t, err)
}

func TestAnalyticProviderRejectsWrongExercise(t *testing.T) {
	env := environment(t, 150)
	contracts, err := BuildContracts(env, instruments.Put)
	require.NoError(t, err)

	var p AnalyticProvider
	_, err = p.PriceEuropean(ContractSpec{Option: contracts[2], Env: env})
	require.ErrorIs(t, err, ErrUnsupportedExercise)
	_, err = p.PriceAmerican(ContractSpec{Option: contracts[1], Env: env})
	require.ErrorIs(t, err, ErrUnsupportedExercise)
}

func TestDriverDefaultMethods(t *testing.T) {
	for _, underlying := range []float64{150, 50} {
		env := environment(t, underlying)
		rows, err := NewDriver(nil, DefaultMethods(AnalyticProvider{})...).Value(env)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		bs, baw := rows[0], rows[1]
		assert.Equal(t, "Black-Scholes", bs.Method)
		assert.Equal(t, "Barone-Adesi/Whaley", baw.Method)

		require.NotNil(t, bs.European)
		assert.Nil(t, bs.Bermudan)
		assert.Nil(t, bs.American)
		assert.Nil(t, baw.European)
		assert.Nil(t, baw.Bermudan)
		require.NotNil(t, baw.American)

		assert.False(t, math.IsNaN(*bs.European) || math.IsInf(*bs.European, 0))
		assert.GreaterOrEqual(t, *bs.European, 0.0)
		assert.GreaterOrEqual(t, *baw.American, *bs.European)
	}
}

func TestDriverScenarioValues(t *testing.T) {
	rows, err := NewDriver(nil, DefaultMethods(AnalyticProvider{})...).Value(environment(t, 150))
	require.NoError(t, err)
	assert.InDelta(t, 51.198626, *rows[0].European, 1e-5)
	assert.InDelta(t, 56.556237, *rows[1].American, 1e-5)

	rows, err = NewDriver(nil, DefaultMethods(AnalyticProvider{})...).Value(environment(t, 50))
	require.NoError(t, err)
	assert.InDelta(t, 43.242814, *rows[0].European, 1e-5)
	assert.Equal(t, 50.0, *rows[1].American)
}

func TestDriverReportsBlackScholesGreeks(t *testing.T) {
	rows, err := NewDriver(nil, DefaultMethods(AnalyticProvider{})...).Value(environment(t, 150))
	require.NoError(t, err)

	g := rows[0].Greeks
	require.NotNil(t, g)
	assert.Equal(t, *rows[0].European, g.Price)
	assert.InDelta(t, -0.552238, g.Delta, 1e-6)
	assert.InDelta(t, 0.005211, g.Gamma, 1e-6)
	assert.InDelta(t, 58.623251, g.Vega, 1e-5)
	assert.InDelta(t, -2.080734, g.Theta, 1e-5)
	assert.InDelta(t, -134.034360, g.Rho, 1e-5)
	assert.Nil(t, rows[1].Greeks)
}

func TestBlackScholesWithoutGreeksProvider(t *testing.T) {
	var p Provider = struct{ Provider }{AnalyticProvider{}}
	rows, err := NewDriver(nil, BlackScholes(p)).Value(environment(t, 150))
	require.NoError(t, err)
	require.NotNil(t, rows[0].European)
	assert.Nil(t, rows[0].Greeks)
}

func TestDriverStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	failing := NewMethod("Failing").With(instruments.European, func(ContractSpec) (float64, error) {
		calls++
		return 0, boom
	})
	never := NewMethod("Never").With(instruments.European, func(ContractSpec) (float64, error) {
		t.Fatal("method after a failure must not run")
		return 0, nil
	})

	rows, err := NewDriver(nil, failing, never).Value(environment(t, 150))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failing")
	assert.Nil(t, rows)
	assert.Equal(t, 1, calls)
}

func TestDriverRejectsNonPositiveUnderlying(t *testing.T) {
	for _, underlying := range []float64{0, -1} {
		rows, err := NewDriver(nil, DefaultMethods(AnalyticProvider{})...).Value(environment(t, underlying))
		require.ErrorIs(t, err, models.ErrInvalidInputs)
		assert.Nil(t, rows)
	}
}

func TestMethodPriceUnsupported(t *testing.T) {
	env := environment(t, 150)
	contracts, err := BuildContracts(env, instruments.Put)
	require.NoError(t, err)

	_, err = BlackScholes(AnalyticProvider{}).Price(ContractSpec{Option: contracts[1], Env: env})
	require.ErrorIs(t, err, ErrUnsupportedExercise)
}

type tick struct{ n int64 }

func (c *tick) Increment() { atomic.AddInt64(&c.n, 1) }

func TestExtendedMethods(t *testing.T) {
	progress := &tick{}
	finished := false
	mc := MonteCarlo(MonteCarloConfig{
		Paths: 20000,
		Seed:  42,
		Progress: func(total int) (models.Progress, func()) {
			assert.Equal(t, models.MonteCarloChunks, total)
			return progress, func() { finished = true }
		},
	})

	rows, err := NewDriver(nil, append(DefaultMethods(AnalyticProvider{}), Binomial(801), mc)...).Value(environment(t, 150))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	tree := rows[2]
	assert.Equal(t, "Binomial Cox-Ross-Rubinstein", tree.Method)
	require.NotNil(t, tree.European)
	require.NotNil(t, tree.Bermudan)
	require.NotNil(t, tree.American)
	assert.InDelta(t, *rows[0].European, *tree.European, 0.05)
	assert.LessOrEqual(t, *tree.European, *tree.Bermudan)
	assert.LessOrEqual(t, *tree.Bermudan, *tree.American)

	sim := rows[3]
	assert.Equal(t, "MC (crude)", sim.Method)
	require.NotNil(t, sim.European)
	assert.Nil(t, sim.Bermudan)
	assert.Nil(t, sim.American)
	assert.InEpsilon(t, *rows[0].European, *sim.European, 0.02)
	assert.Equal(t, int64(models.MonteCarloChunks), atomic.LoadInt64(&progress.n))
	assert.True(t, finished)
}

func TestRowValue(t *testing.T) {
	v := 1.5
	row := Row{Method: "x", Bermudan: &v}
	assert.Nil(t, row.Value(instruments.European))
	assert.Equal(t, &v, row.Value(instruments.Bermudan))
	assert.Nil(t, row.Value(instruments.American))
}
