// Package memory provides an in-process snapshot store. Values are kept as
// encoded snapshot bytes so every load goes through the codec.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/louisbranch/scorekeeper/internal/ledger"
	"github.com/louisbranch/scorekeeper/internal/ledger/snapshot"
)

// DB holds encoded snapshots by key.
type DB struct {
	mu     sync.Mutex
	values map[string][]byte
}

// New returns an empty DB.
func New() *DB {
	return &DB{values: make(map[string][]byte)}
}

// Snapshots returns a ledger.Store bound to key.
func (db *DB) Snapshots(key string) *Store {
	return &Store{db: db, key: strings.TrimSpace(key)}
}

// Put stores raw bytes under key without encoding them.
func (db *DB) Put(key string, raw []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.values[key] = append([]byte(nil), raw...)
}

// Get returns the raw bytes stored under key.
func (db *DB) Get(key string) ([]byte, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	raw, ok := db.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

// Keys lists stored keys in sorted order.
func (db *DB) Keys() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	keys := make([]string, 0, len(db.values))
	for key := range db.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Store is a ledger.Store over one key of a DB.
type Store struct {
	db  *DB
	key string
}

// Load decodes the snapshot under the store's key.
func (s *Store) Load(ctx context.Context) (ledger.GameState, error) {
	if err := ctx.Err(); err != nil {
		return ledger.GameState{}, err
	}
	if s == nil || s.db == nil {
		return ledger.GameState{}, fmt.Errorf("storage is not configured")
	}
	raw, ok := s.db.Get(s.key)
	if !ok {
		return ledger.GameState{}, ledger.ErrSnapshotNotFound
	}
	return snapshot.Unmarshal(raw)
}

// Save encodes state and overwrites the stored snapshot.
func (s *Store) Save(ctx context.Context, state ledger.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	raw, err := snapshot.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.db.Put(s.key, raw)
	return nil
}

// Clear removes the stored snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.values, s.key)
	return nil
}

var _ ledger.Store = (*Store)(nil)
