package report

import (
	"os"

	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/market"
	"github.com/bcdannyboy/optcalc/models"
	"github.com/bcdannyboy/optcalc/valuation"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"
)

const dateLayout = "2006-01-02"

type Document struct {
	OptionType     string        `json:"option_type"`
	EvaluationDate string        `json:"evaluation_date"`
	Settlement     string        `json:"settlement_date"`
	Maturity       string        `json:"maturity_date"`
	BermudanDates  []string      `json:"bermudan_dates"`
	Scenario       ScenarioDoc   `json:"scenario"`
	Rows           []RowDocument `json:"rows"`
}

type ScenarioDoc struct {
	Underlying    decimal.Decimal `json:"underlying"`
	Strike        decimal.Decimal `json:"strike"`
	DividendYield decimal.Decimal `json:"dividend_yield"`
	RiskFreeRate  decimal.Decimal `json:"risk_free_rate"`
	Volatility    decimal.Decimal `json:"volatility"`
}

type RowDocument struct {
	Method   string              `json:"method"`
	European decimal.NullDecimal `json:"european"`
	Bermudan decimal.NullDecimal `json:"bermudan"`
	American decimal.NullDecimal `json:"american"`
	Greeks   *GreeksDoc          `json:"greeks,omitempty"`
}

// GreeksDoc holds European sensitivities. Theta is per year.
type GreeksDoc struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Theta decimal.Decimal `json:"theta"`
	Vega  decimal.Decimal `json:"vega"`
	Rho   decimal.Decimal `json:"rho"`
}

func greeksDoc(g *models.BSMResult) *GreeksDoc {
	if g == nil {
		return nil
	}
	round := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(6) }
	return &GreeksDoc{
		Delta: round(g.Delta),
		Gamma: round(g.Gamma),
		Theta: round(g.Theta),
		Vega:  round(g.Vega),
		Rho:   round(g.Rho),
	}
}

func roundedValue(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v).Round(6))
}

func BuildDocument(env *market.Environment, optionType instruments.OptionType, rows []valuation.Row) Document {
	s := env.Scenario
	doc := Document{
		OptionType:     optionType.String(),
		EvaluationDate: env.EvaluationDate.Format(dateLayout),
		Settlement:     env.Settlement.Format(dateLayout),
		Maturity:       env.Maturity.Format(dateLayout),
		BermudanDates:  make([]string, 0, len(env.BermudanDates)),
		Scenario: ScenarioDoc{
			Underlying:    decimal.NewFromFloat(s.Underlying),
			Strike:        decimal.NewFromFloat(s.Strike),
			DividendYield: decimal.NewFromFloat(s.DividendYield),
			RiskFreeRate:  decimal.NewFromFloat(s.RiskFreeRate),
			Volatility:    decimal.NewFromFloat(s.Volatility),
		},
		Rows: make([]RowDocument, 0, len(rows)),
	}
	for _, d := range env.BermudanDates {
		doc.BermudanDates = append(doc.BermudanDates, d.Format(dateLayout))
	}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, RowDocument{
			Method:   row.Method,
			European: roundedValue(row.European),
			Bermudan: roundedValue(row.Bermudan),
			American: roundedValue(row.American),
			Greeks:   greeksDoc(row.Greeks),
		})
	}
	return doc
}

func MarshalDocument(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal report")
	}
	return data, nil
}

// WriteJSON saves the report document to path.
func WriteJSON(path string, doc Document) error {
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}
