package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bcdannyboy/optcalc/calculator"
	"github.com/bcdannyboy/optcalc/config"
	"github.com/bcdannyboy/optcalc/logging"
	optcalcslack "github.com/bcdannyboy/optcalc/slack"
)

func main() {
	os.Exit(run(os.Stderr))
}

// run serves slash commands until the socket mode connection ends and
// returns the process exit code.
func run(stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := cfg.RequireSlack(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	calc := calculator.New(cfg, logger.Sugar())
	bot := optcalcslack.NewSlackBot(cfg.Slack.AppToken, cfg.Slack.BotToken, calc, logger)
	if err := bot.Start(); err != nil {
		logger.Sugar().Errorw("slack bot stopped", "error", err)
		return 1
	}
	return 0
}
