// Package trace provides pluggable observability for a flow.Context's
// solve activity: DFS discovery/finish, worklist enqueue/dequeue, and
// accumulator update/suppression, routed through a small Emitter
// interface with log, buffered, OpenTelemetry, and no-op sinks.
//
// Tracing has no semantic effect on a solve: a Context with no
// Emitter configured behaves identically to one wired to any Emitter
// implementation here, modulo the side effects the Emitter itself
// performs.
package trace

// EventKind identifies what happened at a solver event.
type EventKind string

const (
	EventDfsDiscover          EventKind = "dfs_discover"
	EventDfsFinish            EventKind = "dfs_finish"
	EventWorklistEnqueue      EventKind = "worklist_enqueue"
	EventWorklistDequeue      EventKind = "worklist_dequeue"
	EventAccumulatorUpdate    EventKind = "accumulator_update"
	EventAccumulatorSuppressed EventKind = "accumulator_suppressed"
	EventSolveStart           EventKind = "solve_start"
	EventSolveDone            EventKind = "solve_done"
)

// Event is one observable occurrence during a Context's solve.
type Event struct {
	ContextID string
	CellName  string
	Kind      EventKind

	// DiscoveryTime/FinishTime are populated for dfs_discover/dfs_finish
	// events; zero otherwise.
	DiscoveryTime int
	FinishTime    int

	// Meta carries event-kind-specific detail (e.g. how many inputs
	// changed) without forcing every Emitter implementation to understand
	// every kind.
	Meta map[string]any

	Err error
}
