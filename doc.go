// Package flow implements a dataflow fixpoint engine: a user-declared
// network of mutually dependent cells, possibly cyclic, solved by chaotic
// iteration to a fixpoint.
//
// The declarative surface lets a caller write equations of the form
// x = f(x, y, z), including self-reference through Delay, and ask for x's
// solved value via Get. Typical uses are dataflow analyses over bounded
// semilattices: grammar nullability/first/follow sets, liveness, constant
// propagation, type inference.
//
// A Context owns exactly one DFS time counter, shared by every discovery
// pass it launches (one per Get on a not-yet-discovered accumulator), and
// one priority worklist.
// Cells created by one Context must not be passed to another. A Context is
// not safe for concurrent Get calls; callers must either serialize access
// externally or ensure only one goroutine ever calls Get on a given
// Context's cells.
package flow
