package snapshot

import "github.com/tyukiand/flow"

// Export converts a Context's named accumulators into a Snapshot ready to
// pass to Store.Save, under the given run identifier. This is the same
// data Context.SaveSnapshot writes when a Context is built with
// flow.WithSnapshotStore; Export is for callers who want to pick the run ID
// or store at call time instead of at construction time.
func Export(ctx *flow.Context, runID string) Snapshot {
	return Snapshot{RunID: runID, Entries: ctx.SnapshotEntries()}
}
