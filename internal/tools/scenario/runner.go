package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/scorekeeper/internal/platform/timeouts"
)

// Config controls scenario execution.
type Config struct {
	// DBPath selects a SQLite snapshot database. Empty uses memory stores.
	DBPath     string
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
		Verbose:    false,
	}
}

// Runner executes Lua scenarios against a ledger.
type Runner struct {
	stores     storeProvider
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
}

// NewRunner prepares a scenario runner, opening the SQLite database when
// one is configured.
func NewRunner(cfg Config) (*Runner, error) {
	var stores storeProvider = memoryProvider{}
	if strings.TrimSpace(cfg.DBPath) != "" {
		provider, err := newSQLiteProvider(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		stores = provider
	}
	return newRunnerWithDeps(cfg, runnerDeps{stores: stores})
}

// newRunnerWithDeps builds a Runner from pre-built dependencies.
// Config defaults (logger, timeout) are applied here so they are testable.
func newRunnerWithDeps(cfg Config, deps runnerDeps) (*Runner, error) {
	if deps.stores == nil {
		return nil, errors.New("store provider is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}

	return &Runner{
		stores:     deps.stores,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
	}, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r == nil || r.stores == nil {
		return nil
	}
	return r.stores.Close()
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.RunFile(ctx, path)
}

// RunDir executes every *.lua scenario in dir in name order. It runs them
// all and joins the failures.
func RunDir(ctx context.Context, cfg Config, dir string) error {
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.RunDir(ctx, dir)
}

// RunFile loads and executes one scenario file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return r.RunScenario(ctx, scenario)
}

// RunDir executes every *.lua scenario in dir.
func (r *Runner) RunDir(ctx context.Context, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("glob scenarios: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no scenarios found in %s", dir)
	}
	sort.Strings(paths)

	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.RunFile(ctx, path); err != nil {
			r.logger.Printf("FAIL %s: %v", filepath.Base(path), err)
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		r.logger.Printf("ok   %s", filepath.Base(path))
	}
	return errors.Join(errs...)
}

// RunScenario executes the scenario steps against a fresh ledger.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (err error) {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))

	store, release, err := r.stores.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := release(context.Background()); releaseErr != nil && err == nil {
			err = fmt.Errorf("release scenario store: %w", releaseErr)
		}
	}()

	state := &scenarioState{store: store}
	if err := r.openLedger(ctx, state); err != nil {
		return err
	}

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
