package flow

import "errors"

// ErrMutationDuringSolve guards a usage violation: constructing a new
// accumulator (Accumulator, AccumulatorSingle) on a Context while that
// Context is in the middle of a Get call. Rather than silently corrupting
// worklist/DFS state, construction panics with this sentinel. Pure, Delay,
// Map and the other stateless constructors take no Context and are not
// guarded.
var ErrMutationDuringSolve = errors.New("flow: cell constructed on a Context while it is solving")

// ErrCrossContextInput is the usage-violation guard for mixing cells from
// two different Context instances into one accumulator's input set. Cells
// never expose which Context owns them in the public API, so this can
// only be triggered by passing cells across a Context boundary explicitly.
var ErrCrossContextInput = errors.New("flow: accumulator input belongs to a different Context")
