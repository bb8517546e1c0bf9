package flow_test

import (
	"testing"

	"github.com/tyukiand/flow"
)

// TestWorklistCoalescing pins down the exact coalescing behavior:
// inserting ("b",42), ("a",3), ("c",400), ("a",7), ("b",58),
// ("c",600) with the "+" monoid and lexicographic locus ordering, then
// draining, must invoke doWork exactly three times with
// ("a",10), ("b",100), ("c",1000) in that order.
func TestWorklistCoalescing(t *testing.T) {
	type call struct {
		locus string
		sum   int
	}
	var calls []call

	wl := flow.NewWorklist(
		func(locus string, sum int) { calls = append(calls, call{locus, sum}) },
		0,
		func(a, b int) int { return a + b },
		func(a, b string) bool { return a < b },
	)

	wl.AddTodos("b", 42)
	wl.AddTodos("a", 3)
	wl.AddTodos("c", 400)
	wl.AddTodos("a", 7)
	wl.AddTodos("b", 58)
	wl.AddTodos("c", 600)

	wl.WorkUntilEmpty()

	want := []call{{"a", 10}, {"b", 100}, {"c", 1000}}
	if len(calls) != len(want) {
		t.Fatalf("doWork invoked %d times, want %d: %v", len(calls), len(want), calls)
	}
	for i, c := range want {
		if calls[i] != c {
			t.Fatalf("call %d = %v, want %v\nfull trace: %v", i, calls[i], c, calls)
		}
	}
}

func TestWorklistReenqueueDuringDoWorkDrivesConvergence(t *testing.T) {
	var calls int
	var wl *flow.Worklist[string, int]
	wl = flow.NewWorklist(
		func(locus string, sum int) {
			calls++
			if calls < 3 {
				wl.AddTodos(locus, 1) // re-enqueue self; must be drained in a later iteration
			}
		},
		0,
		func(a, b int) int { return a + b },
		func(a, b string) bool { return a < b },
	)

	wl.AddTodos("x", 1)
	wl.WorkUntilEmpty()

	if calls != 3 {
		t.Fatalf("doWork invoked %d times, want 3", calls)
	}
	if wl.ActiveCount() != 0 {
		t.Fatalf("worklist not empty after WorkUntilEmpty: ActiveCount = %d", wl.ActiveCount())
	}
}

func TestWorklistActiveCountTracksPendingLoci(t *testing.T) {
	wl := flow.NewWorklist(
		func(string, int) {},
		0,
		func(a, b int) int { return a + b },
		func(a, b string) bool { return a < b },
	)

	if wl.ActiveCount() != 0 {
		t.Fatalf("ActiveCount = %d on empty worklist, want 0", wl.ActiveCount())
	}

	wl.AddTodos("a", 1)
	wl.AddTodos("b", 1)
	wl.AddTodos("a", 1) // coalesces into the existing "a" locus, not a new one

	if wl.ActiveCount() != 2 {
		t.Fatalf("ActiveCount = %d, want 2", wl.ActiveCount())
	}
}
