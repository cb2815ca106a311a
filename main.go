package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bcdannyboy/optcalc/calculator"
	"github.com/bcdannyboy/optcalc/config"
	"github.com/bcdannyboy/optcalc/logging"
	"github.com/bcdannyboy/optcalc/prompt"
	"github.com/bcdannyboy/optcalc/report"
	"github.com/pkg/errors"
)

const welcome = "Welcome to our Option Calculator. Enter the next necessary information"

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

// run executes one calculator session and returns the process exit code.
// Nothing past the prompt reaches stdout unless pricing succeeded.
func run(stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(stderr, "unknown error")
			code = 1
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck
	log := logger.Sugar()

	p := prompt.NewPrompterFromReader(stdin, stdout)
	if err := p.Println(welcome); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	underlying, err := p.Float("Enter a underlying price: ")
	if err != nil {
		fmt.Fprintln(stderr, errors.Wrap(err, "read underlying price"))
		return 1
	}

	var opts []calculator.Option
	if cfg.Progress {
		opts = append(opts, calculator.WithProgress(stderr))
	}
	res, err := calculator.New(cfg, log, opts...).Price(underlying)
	if err != nil {
		log.Debugw("valuation failed", "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}

	// the report file goes first so a failed write leaves stdout at the prompt
	if cfg.ReportFile != "" {
		if err := report.WriteJSON(cfg.ReportFile, res.Document()); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		log.Infow("wrote report", "file", cfg.ReportFile)
	}

	if err := res.Render(stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
