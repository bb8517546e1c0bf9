//go:build !flow_noassert

package flow

import "fmt"

// assertInvariant enforces a "cannot-happen" internal condition: one that
// must not occur if both this library and the caller respect their
// contracts. Each carries a stable identifier for bug reports. These are
// fatal, never a recoverable error, and are compiled out entirely under
// the flow_noassert build tag.
func assertInvariant(id string, cond bool, detail string) {
	if !cond {
		panic(fmt.Sprintf("flow: internal invariant violated [%s]: %s", id, detail))
	}
}
