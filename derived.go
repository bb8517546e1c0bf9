package flow

// constantCell is the constant variant: a fixed value with no upstream
// accumulators.
type constantCell[T any] struct {
	nameHolder
	value T
}

// Pure wraps value in a Cell that never changes.
func Pure[T any](value T) Cell[T] {
	return &constantCell[T]{value: value}
}

// Unit is Pure applied to the empty struct, for cells whose only purpose is
// to participate in the graph's shape (e.g. a trigger with no payload).
func Unit() Cell[struct{}] {
	return Pure(struct{}{})
}

func (c *constantCell[T]) upstreamAccumulators() nodeSet { return nil }
func (c *constantCell[T]) forceGet() {}
func (c *constantCell[T]) currentValue() T { return c.value }
func (c *constantCell[T]) Get() T { return c.value }

// delayCell is the lazy variant: a wrapper whose thunk is evaluated at
// most once, on first access to currentValue, upstreamAccumulators, or
// Get. This is what lets user code write forward references and
// declaration-order cycles.
type delayCell[T any] struct {
	nameHolder
	thunk    func() Cell[T]
	resolved bool
	inner    Cell[T]
}

// Delay defers calling thunk until this cell is first used. Use it to close
// a cycle where a cell must refer to a value not yet constructed.
func Delay[T any](thunk func() Cell[T]) Cell[T] {
	return &delayCell[T]{thunk: thunk}
}

func (d *delayCell[T]) force() Cell[T] {
	if !d.resolved {
		d.inner = d.thunk()
		d.resolved = true
		d.thunk = nil
	}
	return d.inner
}

func (d *delayCell[T]) upstreamAccumulators() nodeSet { return d.force().upstreamAccumulators() }
func (d *delayCell[T]) forceGet() { d.force().forceGet() }
func (d *delayCell[T]) currentValue() T { return d.force().currentValue() }
func (d *delayCell[T]) Get() T { return d.force().Get() }

// mapperCell is a stateless view applying f to inner's value on demand,
// with no caching of its own.
type mapperCell[A, B any] struct {
	nameHolder
	inner Cell[A]
	f     func(A) B
}

// Map transforms c's solved value with f. Go's generic-method restriction
// (a generic interface's methods cannot introduce new type parameters)
// is why this is a free function rather than a Cell[A] method.
func Map[A, B any](c Cell[A], f func(A) B) Cell[B] {
	return &mapperCell[A, B]{inner: c, f: f}
}

func (m *mapperCell[A, B]) upstreamAccumulators() nodeSet { return m.inner.upstreamAccumulators() }
func (m *mapperCell[A, B]) forceGet() { forceAll(m.inner) }
func (m *mapperCell[A, B]) currentValue() B { return m.f(m.inner.currentValue()) }

func (m *mapperCell[A, B]) Get() B {
	m.forceGet()
	return m.currentValue()
}

// zipCell is a stateless pairing of two cells' values.
type zipCell[A, B any] struct {
	nameHolder
	a Cell[A]
	b Cell[B]
}

// Zip pairs a and b's solved values.
func Zip[A, B any](a Cell[A], b Cell[B]) Cell[Pair[A, B]] {
	return &zipCell[A, B]{a: a, b: b}
}

func (z *zipCell[A, B]) upstreamAccumulators() nodeSet {
	return unionNodeSets(z.a.upstreamAccumulators(), z.b.upstreamAccumulators())
}
func (z *zipCell[A, B]) forceGet() { forceAll(z.a, z.b) }
func (z *zipCell[A, B]) currentValue() Pair[A, B] {
	return Pair[A, B]{First: z.a.currentValue(), Second: z.b.currentValue()}
}

func (z *zipCell[A, B]) Get() Pair[A, B] {
	z.forceGet()
	return z.currentValue()
}

// Triple is the element type produced by Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// triCell is the three-way generalization of zipCell, kept as its own type
// rather than nested Zip calls so that Zip3's Get forces a, b, c in one
// pass instead of through two levels of wrapping.
type triCell[A, B, C any] struct {
	nameHolder
	a Cell[A]
	b Cell[B]
	c Cell[C]
}

// Zip3 groups a, b, c's solved values.
func Zip3[A, B, C any](a Cell[A], b Cell[B], c Cell[C]) Cell[Triple[A, B, C]] {
	return &triCell[A, B, C]{a: a, b: b, c: c}
}

func (z *triCell[A, B, C]) upstreamAccumulators() nodeSet {
	return unionNodeSets(
		z.a.upstreamAccumulators(),
		z.b.upstreamAccumulators(),
		z.c.upstreamAccumulators(),
	)
}
func (z *triCell[A, B, C]) forceGet() { forceAll(z.a, z.b, z.c) }
func (z *triCell[A, B, C]) currentValue() Triple[A, B, C] {
	return Triple[A, B, C]{First: z.a.currentValue(), Second: z.b.currentValue(), Third: z.c.currentValue()}
}

func (z *triCell[A, B, C]) Get() Triple[A, B, C] {
	z.forceGet()
	return z.currentValue()
}
