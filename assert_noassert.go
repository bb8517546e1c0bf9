//go:build flow_noassert

package flow

// assertInvariant is a no-op under flow_noassert: internal "cannot-happen"
// checks are compiled out entirely in release builds.
func assertInvariant(id string, cond bool, detail string) {}
