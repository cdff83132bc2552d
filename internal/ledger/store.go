package ledger

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound indicates no snapshot has been saved under the key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store persists the ledger's snapshot. Implementations own serialization.
type Store interface {
	// Load returns the last saved state, or ErrSnapshotNotFound.
	Load(ctx context.Context) (GameState, error)
	// Save overwrites the snapshot with state.
	Save(ctx context.Context, state GameState) error
	// Clear removes the snapshot record entirely.
	Clear(ctx context.Context) error
}
