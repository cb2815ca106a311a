package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("invalid config")

type LogConfig struct {
	Level  string
	Format string // console or json
}

type MonteCarloConfig struct {
	Paths int
	Seed  uint64
}

type SlackConfig struct {
	AppToken string
	BotToken string
}

type Config struct {
	Log             LogConfig
	ExtendedMethods bool
	BinomialSteps   int
	MonteCarlo      MonteCarloConfig
	Progress        bool
	ReportFile      string
	Slack           SlackConfig
}

func Default() Config {
	return Config{
		Log:           LogConfig{Level: "warn", Format: "console"},
		BinomialSteps: 801,
		MonteCarlo:    MonteCarloConfig{Paths: 100000, Seed: 42},
	}
}

// Load reads the given .env files into the process environment and then
// builds the config from it. With no files, a missing ./.env is ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !os.IsNotExist(errors.Cause(err)) {
			return Config{}, errors.Wrap(err, "load env file")
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	r := reader{lookup: lookup}

	cfg.Log.Level = strings.ToLower(r.str("OPTCALC_LOG_LEVEL", cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(r.str("OPTCALC_LOG_FORMAT", cfg.Log.Format))
	cfg.ExtendedMethods = r.boolean("OPTCALC_EXTENDED_METHODS", cfg.ExtendedMethods)
	cfg.BinomialSteps = r.integer("OPTCALC_BINOMIAL_STEPS", cfg.BinomialSteps)
	cfg.MonteCarlo.Paths = r.integer("OPTCALC_MC_PATHS", cfg.MonteCarlo.Paths)
	cfg.MonteCarlo.Seed = r.unsigned("OPTCALC_MC_SEED", cfg.MonteCarlo.Seed)
	cfg.Progress = r.boolean("OPTCALC_PROGRESS", cfg.Progress)
	cfg.ReportFile = r.str("OPTCALC_REPORT_FILE", cfg.ReportFile)
	cfg.Slack.AppToken = r.str("SLACK_APP_TOKEN", "")
	cfg.Slack.BotToken = r.str("SLACK_BOT_TOKEN", "")

	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "OPTCALC_LOG_LEVEL %q", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return errors.Wrapf(ErrInvalidConfig, "OPTCALC_LOG_FORMAT %q, want console or json", c.Log.Format)
	}
	if c.BinomialSteps < 1 {
		return errors.Wrapf(ErrInvalidConfig, "OPTCALC_BINOMIAL_STEPS must be positive, got %d", c.BinomialSteps)
	}
	if c.MonteCarlo.Paths < 1 {
		return errors.Wrapf(ErrInvalidConfig, "OPTCALC_MC_PATHS must be positive, got %d", c.MonteCarlo.Paths)
	}
	return nil
}

// RequireSlack checks that both bot tokens are present.
func (c Config) RequireSlack() error {
	if c.Slack.AppToken == "" || c.Slack.BotToken == "" {
		return errors.Wrap(ErrInvalidConfig, "SLACK_APP_TOKEN and SLACK_BOT_TOKEN must be set")
	}
	return nil
}

// reader keeps the first parse error so callers can read every key and
// check once.
type reader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *reader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *reader) str(key, def string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return def
}

func (r *reader) fail(key, v string) {
	if r.err == nil {
		r.err = errors.Wrapf(ErrInvalidConfig, "%s=%q", key, v)
	}
}

func (r *reader) boolean(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v)
		return def
	}
	return b
}

func (r *reader) integer(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v)
		return def
	}
	return n
}

func (r *reader) unsigned(key string, def uint64) uint64 {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		r.fail(key, v)
		return def
	}
	return n
}
