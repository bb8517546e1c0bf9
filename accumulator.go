package flow

// accumulatorCell is the only stateful Cell kind. It holds an authoritative
// value of type B, a set of accumulated inputs of type A, and participates
// in DFS and the worklist via its embedded *node.
type accumulatorCell[A comparable, B any] struct {
	*node
	ctx      *Context
	reactive *reactiveCell[B, map[A]struct{}]
	inputs   []Cell[A]
}

// Accumulator creates a multi-input accumulator: its value starts at init
// and is recomputed by combine whenever one or more of inputs changes,
// receiving the current value together with the set of values of the
// inputs that changed. equal decides whether a recomputed value counts as
// a change; pass nil to use reflect.DeepEqual. Equality must be honest:
// downstream notification is suppressed whenever equal reports no change,
// and that suppression is what terminates cyclic solves.
func Accumulator[A comparable, B any](ctx *Context, inputs []Cell[A], init B, combine func(B, map[A]struct{}) B, equal func(B, B) bool) Cell[B] {
	ctx.guardConstruction()

	n := ctx.newNode()
	reactive := newReactiveCell(init, equal, combine)
	inputsCopy := append([]Cell[A](nil), inputs...)

	acc := &accumulatorCell[A, B]{
		node:     n,
		ctx:      ctx,
		reactive: reactive,
		inputs:   inputsCopy,
	}

	n.buildChildren = func(n *node) {
		n.childNodesToInputs = make(map[*node]inputSet)
		for _, in := range inputsCopy {
			for u := range in.upstreamAccumulators() {
				if u.ctx != ctx {
					panic(ErrCrossContextInput)
				}
				if n.childNodesToInputs[u] == nil {
					n.childNodesToInputs[u] = inputSet{}
				}
				n.childNodesToInputs[u][in] = struct{}{}
			}
		}
	}

	n.registerOnUpdate = func(cb func()) { reactive.registerOnUpdate(cb) }

	n.seedInputs = func() inputSet {
		s := make(inputSet, len(inputsCopy))
		for _, in := range inputsCopy {
			s[in] = struct{}{}
		}
		return s
	}

	n.applyChanged = func(changed inputSet) {
		values := make(map[A]struct{}, len(changed))
		for _, in := range inputsCopy {
			if _, ok := changed[in]; ok {
				values[in.currentValue()] = struct{}{}
			}
		}
		assertInvariant("FLOW-E01", len(values) > 0, "empty change batch delivered to accumulator.update")
		changedValue := reactive.update(values)
		ctx.onAccumulatorUpdate(n, changedValue)
	}

	n.snapshotValue = func() any { return reactive.currentValue() }

	ctx.register(n)
	return acc
}

// AccumulatorSingle is sugar for the common case of a single input: it
// delegates to Accumulator with a singleton combiner that asserts exactly
// one input changed per call.
func AccumulatorSingle[A comparable, B any](ctx *Context, input Cell[A], init B, combine func(B, A) B, equal func(B, B) bool) Cell[B] {
	wrapped := func(b B, changed map[A]struct{}) B {
		assertInvariant("FLOW-E02", len(changed) == 1, "single-input accumulator received a batch of size != 1")
		for a := range changed {
			return combine(b, a)
		}
		return b // unreachable given the assertion above
	}
	return Accumulator(ctx, []Cell[A]{input}, init, wrapped, equal)
}

func (a *accumulatorCell[A, B]) Get() B {
	a.node.ensureSolved()
	return a.reactive.currentValue()
}

func (a *accumulatorCell[A, B]) currentValue() B { return a.reactive.currentValue() }
