// Package snapshot provides diagnostic, read-only-afterward persistence of
// a solved (or partially solved) Context's named accumulators. It is
// write-mostly: saving a Snapshot never feeds back into a running solve.
//
// Store, Snapshot, and Entry are aliases onto flow's own definitions
// (flow.Store, flow.Snapshot, flow.Entry) rather than copies: Context.SaveSnapshot
// and WithSnapshotStore live in package flow and must speak the same
// interface MemoryStore/SQLiteStore/MySQLStore implement here, with no
// import in the other direction.
package snapshot

import "github.com/tyukiand/flow"

// ErrNotFound is returned when a requested run ID does not exist.
var ErrNotFound = flow.ErrSnapshotNotFound

// Entry is one named accumulator's recorded state at the moment its
// enclosing Context.SnapshotEntries was taken.
type Entry = flow.Entry

// Snapshot is the full set of named accumulators captured for one run.
type Snapshot = flow.Snapshot

// Store persists Snapshots. Implementations: MemoryStore (tests),
// SQLiteStore, MySQLStore.
type Store = flow.Store
