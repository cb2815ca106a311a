package calculator

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bcdannyboy/optcalc/config"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/models"
	"github.com/bcdannyboy/optcalc/valuation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceDefault(t *testing.T) {
	calc := New(config.Default(), nil)
	res, err := calc.Price(150)
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Put", res.OptionType.String())
	assert.Equal(t, 200.0, res.Env.Scenario.Strike)

	var buf bytes.Buffer
	require.NoError(t, res.Render(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\nOption type = Put\nMaturity = May 17th, 2022\n"))
	assert.Contains(t, out, "Black-Scholes                      51.198626     N/A           N/A           \n")
	assert.Contains(t, out, "Barone-Adesi/Whaley                N/A           N/A           56.556237     \n")
}

func TestPriceRejectsNonPositiveUnderlying(t *testing.T) {
	_, err := New(config.Default(), nil).Price(0)
	require.ErrorIs(t, err, models.ErrInvalidInputs)
}

func TestPriceBadSchedule(t *testing.T) {
	sched := market.DefaultSchedule()
	sched.Maturity = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := New(config.Default(), nil, WithSchedule(sched)).Price(150)
	require.ErrorIs(t, err, market.ErrInvalidSchedule)
}

type stubProvider struct{ err error }

func (s stubProvider) PriceEuropean(valuation.ContractSpec) (float64, error) { return 1, s.err }
func (s stubProvider) PriceAmerican(valuation.ContractSpec) (float64, error) { return 2, s.err }

func TestWithProvider(t *testing.T) {
	res, err := New(config.Default(), nil, WithProvider(stubProvider{})).Price(50)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *res.Rows[0].European)
	assert.Equal(t, 2.0, *res.Rows[1].American)

	boom := errors.New("provider down")
	_, err = New(config.Default(), nil, WithProvider(stubProvider{err: boom})).Price(50)
	require.ErrorIs(t, err, boom)
}

func TestExtendedMethodsWithProgress(t *testing.T) {
	cfg := config.Default()
	cfg.ExtendedMethods = true
	cfg.BinomialSteps = 201
	cfg.MonteCarlo.Paths = 4000

	var bar bytes.Buffer
	res, err := New(cfg, nil, WithProgress(&bar)).Price(150)
	require.NoError(t, err)

	require.Len(t, res.Rows, 4)
	assert.Equal(t, "Binomial Cox-Ross-Rubinstein", res.Rows[2].Method)
	assert.Equal(t, "MC (crude)", res.Rows[3].Method)
	assert.NotNil(t, res.Rows[2].Bermudan)
	assert.Nil(t, res.Rows[3].Bermudan)
}

func TestDocument(t *testing.T) {
	res, err := New(config.Default(), nil).Price(50)
	require.NoError(t, err)
	doc := res.Document()
	assert.Equal(t, "Put", doc.OptionType)
	require.Len(t, doc.Rows, 2)
	assert.False(t, doc.Rows[0].Bermudan.Valid)
	assert.True(t, doc.Rows[1].American.Valid)
}
