package scenario

import (
	"context"
	"fmt"

	"github.com/louisbranch/scorekeeper/internal/ledger"
	"github.com/louisbranch/scorekeeper/internal/ledger/storage/memory"
	"github.com/louisbranch/scorekeeper/internal/ledger/storage/sqlite"
	"github.com/louisbranch/scorekeeper/internal/platform/id"
)

// storeProvider hands out a fresh snapshot store for each scenario run.
// release removes whatever the run left behind.
type storeProvider interface {
	Acquire(ctx context.Context) (store ledger.Store, release func(context.Context) error, err error)
	Close() error
}

// memoryProvider gives every run its own in-process database.
type memoryProvider struct{}

func (memoryProvider) Acquire(context.Context) (ledger.Store, func(context.Context) error, error) {
	store := memory.New().Snapshots(ledger.DefaultSnapshotKey)
	return store, func(context.Context) error { return nil }, nil
}

func (memoryProvider) Close() error { return nil }

// sqliteProvider shares one database across runs, isolating each run under
// a generated "scenario/<id>" key.
type sqliteProvider struct {
	db *sqlite.DB
}

func newSQLiteProvider(path string) (*sqliteProvider, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario db: %w", err)
	}
	return &sqliteProvider{db: db}, nil
}

func (p *sqliteProvider) Acquire(context.Context) (ledger.Store, func(context.Context) error, error) {
	runID, err := id.NewID()
	if err != nil {
		return nil, nil, fmt.Errorf("scenario key: %w", err)
	}
	store := p.db.Snapshots("scenario/" + runID)
	return store, store.Clear, nil
}

func (p *sqliteProvider) Close() error {
	return p.db.Close()
}

// runnerDeps bundles injectable dependencies for runner construction.
type runnerDeps struct {
	stores storeProvider
}
