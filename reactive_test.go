package flow

import "testing"

func TestReactiveCellUpdateFiresCallbacksOnChange(t *testing.T) {
	r := newReactiveCell(0, nil, func(v int, hint int) int { return v + hint })

	var fired []int
	r.registerOnUpdate(func() { fired = append(fired, 1) })
	r.registerOnUpdate(func() { fired = append(fired, 2) })

	changed := r.update(5)
	if !changed {
		t.Fatalf("expected update to report a change")
	}
	if r.currentValue() != 5 {
		t.Fatalf("currentValue = %d, want 5", r.currentValue())
	}
	if got := fired; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("callbacks fired out of registration order: %v", got)
	}
}

func TestReactiveCellSuppressesNoChangeUpdate(t *testing.T) {
	r := newReactiveCell(10, nil, func(v int, hint int) int { return v }) // never changes

	fireCount := 0
	r.registerOnUpdate(func() { fireCount++ })

	changed := r.update(999)
	if changed {
		t.Fatalf("expected update to report no change")
	}
	if fireCount != 0 {
		t.Fatalf("callback fired on a no-change update: fireCount = %d", fireCount)
	}
	if r.currentValue() != 10 {
		t.Fatalf("currentValue mutated despite no-change update: %d", r.currentValue())
	}
}

func TestReactiveCellDefaultEqualityIsStructural(t *testing.T) {
	type state struct{ items map[int]struct{} }

	r := newReactiveCell(state{items: map[int]struct{}{1: {}}}, nil, func(v state, hint int) state {
		next := map[int]struct{}{}
		for k := range v.items {
			next[k] = struct{}{}
		}
		next[hint] = struct{}{}
		return state{items: next}
	})

	fireCount := 0
	r.registerOnUpdate(func() { fireCount++ })

	if changed := r.update(1); changed {
		t.Fatalf("adding an already-present element should not count as a change")
	}
	if fireCount != 0 {
		t.Fatalf("callback fired despite structurally equal result: fireCount = %d", fireCount)
	}

	if changed := r.update(2); !changed {
		t.Fatalf("adding a new element should count as a change")
	}
	if fireCount != 1 {
		t.Fatalf("fireCount = %d, want 1", fireCount)
	}
}
