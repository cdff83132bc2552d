package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/louisbranch/scorekeeper/internal/ledger"
	"github.com/louisbranch/scorekeeper/internal/ledger/snapshot"
)

func openTempDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scorekeeper.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func startedState() ledger.GameState {
	return ledger.GameState{
		Players: []ledger.Player{
			{Name: "Alice", Scores: []int{10}, Total: 10},
			{Name: "Bob", Scores: []int{20}, Total: 20},
			{Name: "Carol", Scores: []int{}, Total: 0},
		},
		CurrentRound:       1,
		CurrentPlayerIndex: 2,
		GameStarted:        true,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCloseIsNilSafe(t *testing.T) {
	var db *DB
	if err := db.Close(); err != nil {
		t.Fatalf("close nil db: %v", err)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	t.Parallel()
	db := openTempDB(t)

	_, err := db.Snapshots(ledger.DefaultSnapshotKey).Load(context.Background())
	if !errors.Is(err, ledger.ErrSnapshotNotFound) {
		t.Fatalf("error = %v, want %v", err, ledger.ErrSnapshotNotFound)
	}
}

func TestSaveOverwritesAndClearRemoves(t *testing.T) {
	t.Parallel()
	db := openTempDB(t)
	store := db.Snapshots(ledger.DefaultSnapshotKey)
	ctx := context.Background()

	if err := store.Save(ctx, ledger.GameState{Players: []ledger.Player{{Name: "Alice", Scores: []int{}}}}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	want := startedState()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded = %+v, want %+v", got, want)
	}

	var rows int
	if err := db.sqlDB.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ledger.ErrSnapshotNotFound) {
		t.Fatalf("error after clear = %v, want %v", err, ledger.ErrSnapshotNotFound)
	}
}

func TestLoadCorruptValue(t *testing.T) {
	t.Parallel()
	db := openTempDB(t)
	if _, err := db.sqlDB.Exec("INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)", "game", "[]", 0); err != nil {
		t.Fatalf("insert corrupt value: %v", err)
	}

	_, err := db.Snapshots("game").Load(context.Background())
	if !errors.Is(err, snapshot.ErrCorrupt) {
		t.Fatalf("error = %v, want %v", err, snapshot.ErrCorrupt)
	}
}

func TestStoreRequiresKey(t *testing.T) {
	t.Parallel()
	db := openTempDB(t)
	if err := db.Snapshots("  ").Save(context.Background(), ledger.EmptyState()); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestTwoLedgersOnDifferentKeysDoNotInterfere(t *testing.T) {
	t.Parallel()
	db := openTempDB(t)
	ctx := context.Background()

	first, err := ledger.Open(ctx, db.Snapshots("table-1"))
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	second, err := ledger.Open(ctx, db.Snapshots("table-2"))
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		if err := first.AddPlayer(ctx, name); err != nil {
			t.Fatalf("add player to first: %v", err)
		}
	}
	for _, name := range []string{"Dan", "Eve", "Finn", "Gus"} {
		if err := second.AddPlayer(ctx, name); err != nil {
			t.Fatalf("add player to second: %v", err)
		}
	}
	if err := first.StartGame(ctx); err != nil {
		t.Fatalf("start first: %v", err)
	}
	if err := first.RecordNextScore(ctx, "15"); err != nil {
		t.Fatalf("record first: %v", err)
	}

	keys, err := db.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"table-1", "table-2"}) {
		t.Fatalf("keys = %v", keys)
	}

	reloaded, err := ledger.Open(ctx, db.Snapshots("table-2"))
	if err != nil {
		t.Fatalf("reopen second: %v", err)
	}
	state := reloaded.State()
	if state.GameStarted || len(state.Players) != 4 {
		t.Fatalf("second state = %+v", state)
	}

	if err := first.Reset(ctx); err != nil {
		t.Fatalf("reset first: %v", err)
	}
	keys, err = db.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"table-2"}) {
		t.Fatalf("keys after reset = %v", keys)
	}
}

func TestReopenDatabaseKeepsSnapshot(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "scorekeeper.db")
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Snapshots(ledger.DefaultSnapshotKey).Save(ctx, startedState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Snapshots(ledger.DefaultSnapshotKey).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, startedState()) {
		t.Fatalf("loaded = %+v, want %+v", got, startedState())
	}
}
