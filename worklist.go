package flow

import "container/heap"

// Worklist is a mutable priority queue of loci of type L, each carrying a
// coalesced set of pending todos of type T. Multiple enqueues
// of the same locus merge into one pending entry via combine; doWork is
// invoked with the prior pending batch removed *before* the call, so
// doWork may re-enqueue its own locus for a later iteration — that
// re-enqueue, with no separate "seen" tracking, is the entire mechanism
// that drives convergence on cyclic graphs.
//
// L must be comparable: it is used as a map key for the pending-todo
// table. T's only requirement is that combine be an associative monoid
// operation with identity empty.
type Worklist[L comparable, T any] struct {
	doWork  func(L, T)
	empty   T
	combine func(T, T) T
	less    func(a, b L) bool

	active  []L
	pending map[L]T
	queued  map[L]struct{}
}

// NewWorklist constructs a Worklist. doWork is invoked once per drained
// locus; empty is the identity of the todos monoid; combine merges an
// incoming batch into a locus's pending batch; less is a total order used
// to pick the next locus to drain.
func NewWorklist[L comparable, T any](doWork func(L, T), empty T, combine func(T, T) T, less func(a, b L) bool) *Worklist[L, T] {
	return &Worklist[L, T]{
		doWork:  doWork,
		empty:   empty,
		combine: combine,
		less:    less,
		pending: make(map[L]T),
		queued:  make(map[L]struct{}),
	}
}

// heap.Interface, backing active with container/heap.
func (w *Worklist[L, T]) Len() int { return len(w.active) }
func (w *Worklist[L, T]) Less(i, j int) bool {
	return w.less(w.active[i], w.active[j])
}
func (w *Worklist[L, T]) Swap(i, j int) { w.active[i], w.active[j] = w.active[j], w.active[i] }
func (w *Worklist[L, T]) Push(x any) { w.active = append(w.active, x.(L)) }
func (w *Worklist[L, T]) Pop() any {
	old := w.active
	n := len(old)
	item := old[n-1]
	w.active = old[:n-1]
	return item
}

// AddTodos ensures l is in the active set and merges t into its pending
// batch via combine. Calling this from inside doWork for the locus
// currently being drained is the expected re-enqueue path.
func (w *Worklist[L, T]) AddTodos(l L, t T) {
	prior, ok := w.pending[l]
	if !ok {
		prior = w.empty
	}
	w.pending[l] = w.combine(t, prior)

	if _, active := w.queued[l]; !active {
		w.queued[l] = struct{}{}
		heap.Push(w, l)
	}
}

// WorkUntilEmpty drains the worklist: while the active set is non-empty,
// pop the minimum locus, remove its pending batch, and invoke doWork with
// that batch. Removing the pending batch before the call is what allows
// doWork to re-enqueue the same locus for a subsequent iteration.
func (w *Worklist[L, T]) WorkUntilEmpty() {
	for w.Len() > 0 {
		l := heap.Pop(w).(L)
		delete(w.queued, l)
		tasks := w.pending[l]
		delete(w.pending, l)
		w.doWork(l, tasks)
	}
}

// ActiveCount reports the number of loci currently active (queued with
// pending work), without draining anything.
func (w *Worklist[L, T]) ActiveCount() int { return len(w.active) }
