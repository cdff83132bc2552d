// Package scenario parses scenario command flags and runs Lua scenarios
// against the score ledger.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/scorekeeper/internal/platform/cmd"
	"github.com/louisbranch/scorekeeper/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string        `env:"SCOREKEEPER_SCENARIO_FILE"`
	Dir        string        `env:"SCOREKEEPER_SCENARIO_DIR"`
	DBPath     string        `env:"SCOREKEEPER_SCENARIO_DB_PATH"`
	Assertions bool          `env:"SCOREKEEPER_SCENARIO_ASSERT"   envDefault:"true"`
	Verbose    bool          `env:"SCOREKEEPER_SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"SCOREKEEPER_SCENARIO_TIMEOUT"  envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory of scenario lua files to run in order")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite snapshot database (empty uses memory)")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	file := strings.TrimSpace(cfg.Scenario)
	dir := strings.TrimSpace(cfg.Dir)
	switch {
	case file == "" && dir == "":
		return errors.New("scenario path or directory is required")
	case file != "" && dir != "":
		return errors.New("scenario path and directory are mutually exclusive")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}
	runCfg := scenario.Config{
		DBPath:     cfg.DBPath,
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     log.New(errOut, entrypoint.LogPrefix(entrypoint.ServiceScenario), 0),
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		if dir != "" {
			return scenario.RunDir(ctx, runCfg, dir)
		}
		return scenario.RunFile(ctx, runCfg, file)
	})
}
