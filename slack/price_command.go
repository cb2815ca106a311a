package optcalcslack

import (
	"bytes"
	"strings"

	"github.com/bcdannyboy/optcalc/calculator"
	"github.com/bcdannyboy/optcalc/prompt"
	"github.com/bcdannyboy/optcalc/report"
	"github.com/slack-go/slack"
)

const priceUsage = "Usage: /price <underlying>"

type Pricer interface {
	Price(underlying float64) (*calculator.Result, error)
}

type PriceHandler struct {
	calc Pricer
}

func NewPriceHandler(calc Pricer) *PriceHandler {
	return &PriceHandler{calc: calc}
}

func (h *PriceHandler) HandleCommand(cmd slack.SlashCommand, client Poster) error {
	_, _, err := client.PostMessage(cmd.ChannelID,
		slack.MsgOptionText(h.Reply(cmd.Text), false))
	return err
}

// Reply prices the argument and renders the report as a code block.
// Failures come back as a readable message rather than an error.
func (h *PriceHandler) Reply(text string) string {
	args := strings.Fields(text)
	if len(args) != 1 {
		return "Invalid number of arguments. " + priceUsage
	}

	underlying, err := prompt.ParseFloat(args[0])
	if err != nil {
		return "Error: " + err.Error()
	}
	res, err := h.calc.Price(underlying)
	if err != nil {
		return "Error: " + err.Error()
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, res.Env, res.OptionType, res.Rows); err != nil {
		return "Error: " + err.Error()
	}
	return "```\n" + buf.String() + "```"
}
