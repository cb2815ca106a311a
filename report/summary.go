package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/valuation"
	"github.com/pkg/errors"
)

func formatPrice(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.6f %%", v*100)
}

// FormatSummary renders the parameter block followed by two blank lines.
func FormatSummary(env *market.Environment, optionType instruments.OptionType) string {
	s := env.Scenario
	var b strings.Builder
	fmt.Fprintf(&b, "Option type = %s\n", optionType)
	fmt.Fprintf(&b, "Maturity = %s\n", market.FormatLong(env.Maturity))
	fmt.Fprintf(&b, "Underlying price = %s\n", formatPrice(s.Underlying))
	fmt.Fprintf(&b, "Strike = %s\n", formatPrice(s.Strike))
	fmt.Fprintf(&b, "Risk-free interest rate = %s\n", formatPercent(s.RiskFreeRate))
	fmt.Fprintf(&b, "Dividend yield = %s\n", formatPercent(s.DividendYield))
	fmt.Fprintf(&b, "Volatility = %s\n", formatPercent(s.Volatility))
	b.WriteString("\n\n")
	return b.String()
}

func WriteSummary(w io.Writer, env *market.Environment, optionType instruments.OptionType) error {
	_, err := io.WriteString(w, FormatSummary(env, optionType))
	return errors.Wrap(err, "write summary")
}

// Write renders the complete console report: the summary and the table.
func Write(w io.Writer, env *market.Environment, optionType instruments.OptionType, rows []valuation.Row) error {
	if err := WriteSummary(w, env, optionType); err != nil {
		return err
	}
	return WriteTable(w, rows)
}
