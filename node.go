package flow

import "sort"

// node is the type-erased identity of an accumulator. DFS discovery/finish
// bookkeeping, the worklist locus, and the upstream-dependency map all
// live here, independent of the accumulator's element type A and state
// type B — every accumulator[A,B] instantiation wires its own typed
// behavior into a node through closures captured at construction, which
// is this module's stand-in for existential types.
type node struct {
	nameHolder

	id            int // creation order, used only to make ChildNodes deterministic
	ctx           *Context
	discoveryTime int
	finishTime    int

	// childNodesToInputs maps each upstream accumulator u to the subset of
	// this accumulator's own inputs whose value depends on u. Built lazily
	// by buildChildren, during this node's DFS discovery.
	childNodesToInputs map[*node]inputSet

	// buildChildren populates childNodesToInputs by walking this
	// accumulator's typed accumulatedInputs and each one's
	// upstreamAccumulators(). Set once, at construction.
	buildChildren func(n *node)

	// registerOnUpdate forwards to this accumulator's own reactiveCell
	// callback list.
	registerOnUpdate func(cb func())

	// seedInputs returns this accumulator's accumulatedInputs erased to an
	// inputSet, for onFinish's initial worklist seed. Empty if the
	// accumulator has no inputs (in which case onFinish seeds nothing, and
	// the accumulator keeps its initial value permanently).
	seedInputs func() inputSet

	// applyChanged is invoked by the worklist's doWork with the coalesced
	// batch of changed inputs for this locus; it recovers each changed
	// input's typed value, builds the value set its combine expects, and
	// drives this accumulator's reactiveCell.update.
	applyChanged func(changed inputSet)

	// snapshotValue returns this accumulator's current value boxed as any,
	// for Context.Snapshot and the snapshot package's export path.
	snapshotValue func() any
}

func (n *node) Discovered() bool { return n.discoveryTime >= 0 }
func (n *node) Finished() bool { return n.finishTime >= 0 }
func (n *node) DiscoveryTime() int { return n.discoveryTime }
func (n *node) FinishTime() int { return n.finishTime }
func (n *node) StampDiscovery(t int) { n.discoveryTime = t }
func (n *node) StampFinish(t int) { n.finishTime = t }

// ChildNodes returns the keys of childNodesToInputs, sorted by creation
// order so that repeated DFS launches over the same graph visit siblings
// in a stable order.
func (n *node) ChildNodes() []*node {
	out := make([]*node, 0, len(n.childNodesToInputs))
	for c := range n.childNodesToInputs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// ensureSolved runs the two-phase solve for this accumulator if it has
// never been discovered, otherwise does nothing: an accumulator that has
// already been Get-triggered is never re-discovered.
func (n *node) ensureSolved() {
	if !n.Discovered() {
		n.ctx.discoverAndSolveFrom(n)
	}
}

// anyCell, so a *node can stand in for "the accumulator itself" wherever
// an accumulator's upstream-accumulator set or forced solve is needed.
func (n *node) upstreamAccumulators() nodeSet { return nodeSet{n: {}} }
func (n *node) forceGet() { n.ensureSolved() }
