package flow

import "github.com/tyukiand/flow/trace"

// WithEmitter routes every solver event (DFS discovery/finish, worklist
// dequeues, accumulator updates/suppressions, solve start/done) to emitter.
// Unset, a Context uses trace.NullEmitter and pays nothing for tracing.
//
// Example:
//
//	ctx := flow.NewContext(flow.WithEmitter(trace.NewLogEmitter(os.Stderr, false)))
func WithEmitter(emitter trace.Emitter) Option {
	return func(ctx *Context) {
		ctx.emitter = emitter
	}
}

// WithMetrics registers Prometheus collectors on ctx. Unset, a Context
// collects no metrics.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	ctx := flow.NewContext(flow.WithMetrics(flow.NewMetrics(registry)))
func WithMetrics(metrics *Metrics) Option {
	return func(ctx *Context) {
		ctx.metrics = metrics
	}
}

// WithSnapshotStore attaches a diagnostic persistence backend: ctx.SaveSnapshot
// writes a Snapshot of ctx's named accumulators to store under runID.
// Writing snapshots never feeds back into a running solve — it is a
// one-way export for debugging/inspection after Get returns, or between
// otherwise-independent Get calls on the same Context.
//
// Example:
//
//	store := snapshot.NewMemoryStore()
//	ctx := flow.NewContext(flow.WithSnapshotStore(store, "run-42"))
//	total.Get()
//	ctx.SaveSnapshot(context.Background())
func WithSnapshotStore(store Store, runID string) Option {
	return func(ctx *Context) {
		ctx.store = store
		ctx.runID = runID
	}
}
