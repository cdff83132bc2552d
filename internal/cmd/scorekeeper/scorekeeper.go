// Package scorekeeper parses scorekeeper command flags and runs the terminal
// score tracker.
package scorekeeper

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/louisbranch/scorekeeper/internal/ledger"
	"github.com/louisbranch/scorekeeper/internal/ledger/storage/sqlite"
	entrypoint "github.com/louisbranch/scorekeeper/internal/platform/cmd"
	"github.com/louisbranch/scorekeeper/internal/platform/config"
	"github.com/louisbranch/scorekeeper/internal/platform/i18n"
	"github.com/louisbranch/scorekeeper/internal/tui"
)

// Config holds scorekeeper command configuration.
type Config struct {
	DBPath      string `env:"SCOREKEEPER_DB_PATH"      envDefault:"data/scorekeeper.db"`
	SnapshotKey string `env:"SCOREKEEPER_SNAPSHOT_KEY" envDefault:"scoreTracker_gameState"`
	Lang        string `env:"SCOREKEEPER_LANG"         envDefault:"en-US"`
	// LogPath receives log output while the terminal program owns the screen.
	LogPath string `env:"SCOREKEEPER_LOG_PATH" envDefault:"data/scorekeeper.log"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite snapshot database")
	fs.StringVar(&cfg.SnapshotKey, "key", cfg.SnapshotKey, "snapshot key to load and save")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "message language (en-US, pt-BR)")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "log file written while the UI is running")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.SnapshotKey) == "" {
		return Config{}, errors.New("snapshot key is required")
	}
	return cfg, nil
}

// Run opens the snapshot database and drives the terminal program until the
// user quits or ctx is canceled.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if err := config.EnsureParentDir(cfg.DBPath); err != nil {
		return err
	}
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open snapshot db: %w", err)
	}
	defer db.Close()

	logFile, err := openLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScorekeeper, func(ctx context.Context) error {
		model, err := newModel(ctx, cfg, db)
		if err != nil {
			return err
		}

		opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
		if in != nil {
			opts = append(opts, tea.WithInput(in))
		}
		if out != nil {
			opts = append(opts, tea.WithOutput(out))
		}
		if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("run terminal program: %w", err)
		}
		return nil
	})
}

// openLog points the standard logger at path so ledger and UI messages do
// not draw over the alternate screen.
func openLog(path string) (*os.File, error) {
	if err := config.EnsureParentDir(path); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, strings.TrimSpace(entrypoint.LogPrefix(entrypoint.ServiceScorekeeper)))
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func newModel(ctx context.Context, cfg Config, db *sqlite.DB) (tui.Model, error) {
	l, err := ledger.Open(ctx, db.Snapshots(cfg.SnapshotKey), ledger.WithLogger(log.Default()))
	if err != nil {
		return tui.Model{}, fmt.Errorf("open ledger: %w", err)
	}
	return tui.New(ctx, l, i18n.ResolveTag(cfg.Lang), tui.WithLogger(log.Default())), nil
}
