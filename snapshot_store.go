package flow

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by a Store's Load when no snapshot has
// been saved under the requested run ID.
var ErrSnapshotNotFound = errors.New("flow: snapshot not found")

// Snapshot is the full set of named accumulators captured for one run,
// ready to hand to a Store.
type Snapshot struct {
	RunID   string
	Entries []Entry
}

// Store persists Snapshots taken via Context.Snapshot/SnapshotEntries.
// Concrete implementations (MemoryStore, SQLiteStore, MySQLStore,
// RetryingStore) live in flow/snapshot, which depends on this package
// rather than the other way around.
type Store interface {
	// Save persists snap under snap.RunID, overwriting any prior snapshot
	// with the same run ID.
	Save(ctx context.Context, snap Snapshot) error

	// Load retrieves the snapshot previously saved under runID. Returns
	// ErrSnapshotNotFound if none exists.
	Load(ctx context.Context, runID string) (Snapshot, error)
}
