package flow

// nodeSet is the set of accumulator identities whose current values
// directly influence some cell's current value with no intervening
// accumulator. Non-accumulator cells report the union of their children's
// nodeSet; an accumulator caps visibility and reports only itself — this
// is how the engine breaks cycles into supernodes.
type nodeSet map[*node]struct{}

func unionNodeSets(sets ...nodeSet) nodeSet {
	out := make(nodeSet)
	for _, s := range sets {
		for n := range s {
			out[n] = struct{}{}
		}
	}
	return out
}

// inputSet is a type-erased, coalesced batch of changed inputs pending for
// one accumulator. Keys are anyCell handles of the accumulator's own
// accumulatedInputs; the accumulator recovers each one's typed value at
// update time by walking its own typed input slice, never by asserting a
// type out of the erased handle itself. The worklist and
// childNodesToInputs stay generic in L (a *node) and T (an inputSet) even
// though two different accumulators in the same graph may have entirely
// different element types A.
type inputSet map[anyCell]struct{}

func unionInputSets(a, b inputSet) inputSet {
	out := make(inputSet, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// anyCell is the non-generic capability every Cell[T] exposes regardless of
// its element type T. It is what lets a single accumulator hold a
// homogeneous slice of typed inputs while still participating in the
// engine's heterogeneous bookkeeping (childNodesToInputs, worklist todos,
// upstream-accumulator sets) alongside cells of unrelated element types.
type anyCell interface {
	// upstreamAccumulators returns the accumulators whose current value
	// directly influences this cell's current value with no intervening
	// accumulator.
	upstreamAccumulators() nodeSet

	// forceGet solves every accumulator this cell transitively depends on,
	// without itself returning a value. Idempotent after the first call.
	forceGet()

	cellName() string
	setName(string)
}

// Cell is a dataflow node producing a value of type T. The four stateless
// variants (Constant, Delay, a Mapper, a Zip) and the one stateful variant
// (created via Accumulator or AccumulatorSingle) all implement Cell.
type Cell[T any] interface {
	anyCell

	// Get forces this cell's solution and returns it. Calling Get twice
	// returns equal values; the second call performs no additional DFS or
	// worklist work.
	Get() T

	// currentValue is the unforced, on-demand read used internally by
	// combiners and by Get after forcing. It never triggers discovery.
	currentValue() T
}

// nameHolder gives every concrete cell type an optional diagnostic name:
// a human-readable tag for trace output, with no semantic effect.
type nameHolder struct {
	name string
}

func (h *nameHolder) cellName() string { return h.name }
func (h *nameHolder) setName(n string) { h.name = n }

// Named attaches a human-readable name to c for diagnostic output (trace
// events, snapshot export). It has no effect on c's solved
// value. Named returns c for chaining at construction time.
func Named[T any](c Cell[T], name string) Cell[T] {
	c.setName(name)
	return c
}

// forceAll solves every accumulator transitively upstream of the given
// cells, deduplicating across cells that share upstream accumulators.
// Non-accumulator cells resolve Get this way: force every upstream
// accumulator, then recompute from their settled values.
func forceAll(cells ...anyCell) {
	seen := make(nodeSet)
	for _, c := range cells {
		for n := range c.upstreamAccumulators() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			n.ensureSolved()
		}
	}
}

// Pair is the element type produced by Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}
