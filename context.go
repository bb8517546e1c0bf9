package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/tyukiand/flow/trace"
)

// Context is an isolated solver instance: it owns exactly one DFS time
// counter and one worklist, and every cell it constructs is wired against
// those two. Independent Contexts share no state; solving in one never
// observes or affects another.
//
// A Context is not safe for concurrent use. It also must not be mutated
// (via Accumulator/AccumulatorSingle) from inside a combiner while a Get call
// on one of its cells is in progress — see ErrMutationDuringSolve.
type Context struct {
	id       string
	time     *Time
	worklist *Worklist[*node, inputSet]
	nextID   int
	nodes    []*node
	solving  bool

	emitter trace.Emitter
	metrics *Metrics

	store Store
	runID string
}

// Option configures a Context at construction, following this module's
// functional-options idiom.
type Option func(*Context)

// NewContext creates a fresh, isolated solver context.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		id:   fmt.Sprintf("ctx-%d", time.Now().UnixNano()),
		time: NewTime(),
	}
	ctx.worklist = NewWorklist(
		func(n *node, todos inputSet) { ctx.doWork(n, todos) },
		inputSet(nil),
		unionInputSets,
		func(a, b *node) bool { return FinishTimeLess(a, b) },
	)
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.emitter == nil {
		ctx.emitter = trace.NullEmitter{}
	}
	return ctx
}

// guardConstruction rejects building a new cell on a Context while it is
// solving: a caller error, guarded with a panic carrying
// ErrMutationDuringSolve rather than silently corrupting worklist/DFS
// state.
func (ctx *Context) guardConstruction() {
	if ctx.solving {
		panic(ErrMutationDuringSolve)
	}
}

func (ctx *Context) newNode() *node {
	n := &node{id: ctx.nextID, ctx: ctx, discoveryTime: -1, finishTime: -1}
	ctx.nextID++
	return n
}

func (ctx *Context) register(n *node) { ctx.nodes = append(ctx.nodes, n) }

func (ctx *Context) doWork(n *node, todos inputSet) {
	ctx.emit(trace.Event{Kind: trace.EventWorklistDequeue, ContextID: ctx.id, CellName: n.cellName()})
	n.applyChanged(todos)
	if ctx.metrics != nil {
		ctx.metrics.setWorklistDepth(ctx.id, ctx.worklist.ActiveCount())
		ctx.metrics.incWorklistPops(ctx.id)
	}
}

// discoverAndSolveFrom is the two-phase solve: a DFS pass that discovers
// the reachable subgraph and registers cross-node callbacks, followed by
// draining the worklist to quiescence.
func (ctx *Context) discoverAndSolveFrom(root *node) {
	start := time.Now()
	ctx.solving = true
	defer func() { ctx.solving = false }()

	ctx.emit(trace.Event{Kind: trace.EventSolveStart, ContextID: ctx.id, CellName: root.cellName()})

	Dfs(root, ctx.onDiscovery, ctx.onFinish, ctx.time)
	ctx.worklist.WorkUntilEmpty()

	ctx.emit(trace.Event{Kind: trace.EventSolveDone, ContextID: ctx.id, CellName: root.cellName()})
	if ctx.metrics != nil {
		ctx.metrics.observeSolveDuration(ctx.id, time.Since(start).Seconds())
	}
}

func (ctx *Context) onDiscovery(n *node) {
	n.buildChildren(n)
	ctx.emit(trace.Event{
		Kind:          trace.EventDfsDiscover,
		ContextID:     ctx.id,
		CellName:      n.cellName(),
		DiscoveryTime: n.DiscoveryTime(),
	})
	if ctx.metrics != nil {
		ctx.metrics.incDiscovered(ctx.id)
	}

	for u, inputs := range n.childNodesToInputs {
		u, inputs := u, inputs // capture per-iteration
		u.registerOnUpdate(func() {
			ctx.worklist.AddTodos(n, inputs)
			ctx.emit(trace.Event{Kind: trace.EventWorklistEnqueue, ContextID: ctx.id, CellName: n.cellName()})
			if ctx.metrics != nil {
				ctx.metrics.setWorklistDepth(ctx.id, ctx.worklist.ActiveCount())
			}
		})
	}
}

func (ctx *Context) onFinish(n *node) {
	ctx.emit(trace.Event{
		Kind:          trace.EventDfsFinish,
		ContextID:     ctx.id,
		CellName:      n.cellName(),
		DiscoveryTime: n.DiscoveryTime(),
		FinishTime:    n.FinishTime(),
	})

	seeded := n.seedInputs()
	if len(seeded) == 0 {
		return
	}
	ctx.worklist.AddTodos(n, seeded)
	ctx.emit(trace.Event{Kind: trace.EventWorklistEnqueue, ContextID: ctx.id, CellName: n.cellName()})
	if ctx.metrics != nil {
		ctx.metrics.setWorklistDepth(ctx.id, ctx.worklist.ActiveCount())
	}
}

func (ctx *Context) onAccumulatorUpdate(n *node, changed bool) {
	kind := trace.EventAccumulatorUpdate
	if !changed {
		kind = trace.EventAccumulatorSuppressed
	}
	ctx.emit(trace.Event{Kind: kind, ContextID: ctx.id, CellName: n.cellName()})
	if ctx.metrics != nil {
		ctx.metrics.incUpdate(ctx.id, changed)
	}
}

func (ctx *Context) emit(e trace.Event) {
	if ctx.emitter != nil {
		ctx.emitter.Emit(e)
	}
}

// Snapshot returns the current value of every named accumulator reachable
// from cells this Context has constructed, keyed by cell name. It is a
// diagnostic, read-only-afterward export: calling it never seeds the
// worklist or otherwise feeds back into solving.
func (ctx *Context) Snapshot() map[string]any {
	out := make(map[string]any)
	for _, n := range ctx.nodes {
		if n.cellName() == "" || !n.Discovered() {
			continue
		}
		out[n.cellName()] = n.snapshotValue()
	}
	return out
}

// Entry is one named accumulator's state, for callers that need
// discovery/finish times alongside the value (e.g. snapshot.Export).
type Entry struct {
	CellName      string
	Value         any
	DiscoveryTime int
	FinishTime    int
}

// SnapshotEntries is Snapshot's richer counterpart: it includes each named
// accumulator's DFS timestamps, which the plain map form discards.
func (ctx *Context) SnapshotEntries() []Entry {
	var out []Entry
	for _, n := range ctx.nodes {
		if n.cellName() == "" || !n.Discovered() {
			continue
		}
		out = append(out, Entry{
			CellName:      n.cellName(),
			Value:         n.snapshotValue(),
			DiscoveryTime: n.DiscoveryTime(),
			FinishTime:    n.FinishTime(),
		})
	}
	return out
}

// SaveSnapshot persists this Context's current SnapshotEntries to the
// store configured via WithSnapshotStore, under that option's run ID. It
// is a no-op returning nil if no store was configured. Like Snapshot, this
// never feeds back into solving — it is for inspection after Get returns,
// or between independent Get calls on the same Context.
func (ctx *Context) SaveSnapshot(c context.Context) error {
	if ctx.store == nil {
		return nil
	}
	return ctx.store.Save(c, Snapshot{RunID: ctx.runID, Entries: ctx.SnapshotEntries()})
}
