package flow

// Map2 combines two cells' values with f. Equivalent to
// Map(Zip(ca, cb), func(p Pair[A, B]) C { return f(p.First, p.Second) }),
// spelled out directly so callers don't need to unpack a Pair.
func Map2[A, B, C any](ca Cell[A], cb Cell[B], f func(A, B) C) Cell[C] {
	return Map(Zip(ca, cb), func(p Pair[A, B]) C { return f(p.First, p.Second) })
}

// Ap applies a cell of functions to a cell of arguments.
func Ap[A, B any](cf Cell[func(A) B], ca Cell[A]) Cell[B] {
	return Map2(cf, ca, func(f func(A) B, a A) B { return f(a) })
}

// Ap2 applies a cell of two-argument functions to two cells of arguments.
func Ap2[A, B, C any](cf Cell[func(A, B) C], ca Cell[A], cb Cell[B]) Cell[C] {
	return Map2(cf, Zip(ca, cb), func(f func(A, B) C, ab Pair[A, B]) C { return f(ab.First, ab.Second) })
}

// sequenceCell holds all of a slice's cells directly rather than folding
// them pairwise through Zip, so forcing hands every upstream accumulator
// to a single forceAll call (deduplicated across cells) instead of going
// through nested wrapper layers.
type sequenceCell[T any] struct {
	nameHolder
	cells []Cell[T]
}

// Sequence turns a slice of cells into a cell of a slice.
func Sequence[T any](cells []Cell[T]) Cell[[]T] {
	cellsCopy := append([]Cell[T](nil), cells...)
	return &sequenceCell[T]{cells: cellsCopy}
}

func (s *sequenceCell[T]) upstreamAccumulators() nodeSet {
	sets := make([]nodeSet, len(s.cells))
	for i, c := range s.cells {
		sets[i] = c.upstreamAccumulators()
	}
	return unionNodeSets(sets...)
}

func (s *sequenceCell[T]) forceGet() {
	anyCells := make([]anyCell, len(s.cells))
	for i, c := range s.cells {
		anyCells[i] = c
	}
	forceAll(anyCells...)
}

func (s *sequenceCell[T]) currentValue() []T {
	out := make([]T, len(s.cells))
	for i, c := range s.cells {
		out[i] = c.currentValue()
	}
	return out
}

func (s *sequenceCell[T]) Get() []T {
	s.forceGet()
	return s.currentValue()
}

// Traverse maps f over items and sequences the results. Traverse(items, f)
// and Sequence(mapped) agree on Get for any mapped slice built from f; in
// particular Traverse with the identity function is Sequence.
func Traverse[X, T any](items []X, f func(X) Cell[T]) Cell[[]T] {
	cells := make([]Cell[T], len(items))
	for i, x := range items {
		cells[i] = f(x)
	}
	return Sequence(cells)
}
