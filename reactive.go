package flow

import "reflect"

// reactiveCell is a minimal observable state container parameterized by a
// value type B and a change-hint type H. It holds no knowledge
// of the engine, the worklist, or DFS — it is the leaf component callbacks
// are registered against, and the only place currentValue is ever written.
type reactiveCell[B any, H any] struct {
	value     B
	equal     func(B, B) bool
	recompute func(B, H) B
	callbacks []func()
}

// newReactiveCell constructs a reactiveCell with the given initial value,
// equality function, and recompute function. A nil equal defaults to
// reflect.DeepEqual, so callers holding values outside Go's comparable
// universe (e.g. a set represented as a map) still get structural
// equality without supplying their own.
func newReactiveCell[B, H any](init B, equal func(B, B) bool, recompute func(B, H) B) *reactiveCell[B, H] {
	if equal == nil {
		equal = func(x, y B) bool { return reflect.DeepEqual(x, y) }
	}
	return &reactiveCell[B, H]{value: init, equal: equal, recompute: recompute}
}

// currentValue is a read-only view of the stored value.
func (r *reactiveCell[B, H]) currentValue() B { return r.value }

// registerOnUpdate appends cb to the callback list. Multiple registrations
// are allowed; callbacks fire in registration order.
func (r *reactiveCell[B, H]) registerOnUpdate(cb func()) {
	r.callbacks = append(r.callbacks, cb)
}

// update computes recompute(value, hint); if the result differs from the
// current value by r.equal, it replaces the value and invokes every
// registered callback exactly once, in registration order. Otherwise it
// does nothing — no callback fires, no state changes. This suppression is
// load-bearing: it is what stops cyclic equations from ping-ponging
// forever once they reach a fixpoint.
//
// update reports whether the value changed, purely so callers (the
// accumulator layer) can drive tracing/metrics; the suppression decision
// itself depends only on r.equal, never on this return value.
func (r *reactiveCell[B, H]) update(hint H) bool {
	next := r.recompute(r.value, hint)
	if r.equal(r.value, next) {
		return false
	}
	r.value = next
	for _, cb := range r.callbacks {
		cb()
	}
	return true
}
