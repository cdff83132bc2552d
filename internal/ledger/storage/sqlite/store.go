package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/scorekeeper/internal/ledger"
	"github.com/louisbranch/scorekeeper/internal/ledger/snapshot"
	"github.com/louisbranch/scorekeeper/internal/ledger/storage/sqlite/migrations"
	"github.com/louisbranch/scorekeeper/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/scorekeeper/internal/platform/timeouts"
	_ "modernc.org/sqlite"
)

// DB is an open snapshot database.
type DB struct {
	sqlDB *sql.DB
}

// Open opens the SQLite database at path and applies migrations.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		cleanPath, timeouts.SQLiteBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database. It is nil-safe.
func (db *DB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}

// Snapshots returns a ledger.Store bound to key.
func (db *DB) Snapshots(key string) *Store {
	return &Store{db: db, key: strings.TrimSpace(key)}
}

// Keys lists stored snapshot keys in sorted order.
func (db *DB) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if db == nil || db.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := db.sqlDB.QueryContext(ctx, "SELECT key FROM snapshots ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list snapshot keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan snapshot key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot keys: %w", err)
	}
	return keys, nil
}

// Store is a ledger.Store over one snapshot key.
type Store struct {
	db  *DB
	key string
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil || s.db.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if s.key == "" {
		return fmt.Errorf("snapshot key is required")
	}
	return nil
}

// Load reads and decodes the snapshot.
func (s *Store) Load(ctx context.Context) (ledger.GameState, error) {
	if err := s.check(ctx); err != nil {
		return ledger.GameState{}, err
	}

	var value string
	err := s.db.sqlDB.QueryRowContext(ctx, "SELECT value FROM snapshots WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.GameState{}, ledger.ErrSnapshotNotFound
	}
	if err != nil {
		return ledger.GameState{}, fmt.Errorf("get snapshot: %w", err)
	}
	return snapshot.Unmarshal([]byte(value))
}

// Save encodes state and upserts it under the store's key.
func (s *Store) Save(ctx context.Context, state ledger.GameState) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	value, err := snapshot.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.sqlDB.ExecContext(ctx, `
INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key,
		string(value),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// Clear deletes the snapshot row.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, err := s.db.sqlDB.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

var _ ledger.Store = (*Store)(nil)
