package flow

// Time is an opaque monotonically increasing counter shared across
// possibly-many Dfs launches, so that finish-time ordering stays globally
// consistent when a Context's worklist interleaves accumulators
// discovered from different roots.
type Time struct {
	n int
}

// NewTime creates a fresh counter starting below the first valid
// timestamp (1).
func NewTime() *Time { return &Time{n: 0} }

func (t *Time) tick() int {
	t.n++
	return t.n
}

// DfsNode is the capability set Dfs needs from a node: mutable
// discovery/finish timestamps (sentinel -1 = unassigned) and a set of
// children to recurse into. N is self-referential (F-bounded) so a
// concrete node type satisfies DfsNode[itself] and Dfs can recurse over a
// homogeneous slice of children without any further type erasure.
type DfsNode[N any] interface {
	Discovered() bool
	Finished() bool
	DiscoveryTime() int
	FinishTime() int
	StampDiscovery(t int)
	StampFinish(t int)
	ChildNodes() []N
}

// Dfs runs a recursive depth-first search from start, stamping discovery
// and finish times under the shared time counter and invoking onDiscovery
// when a node is first visited and onFinish when its subtree is fully
// explored. Children already discovered (by this launch or an earlier one
// sharing the same Time) are skipped silently, as in standard DFS.
//
// Precondition: start must not already be discovered. Violating this is a
// usage error, not a recoverable one.
func Dfs[N DfsNode[N]](start N, onDiscovery, onFinish func(N), time *Time) {
	assertInvariant("FLOW-E00", !start.Discovered(), "Dfs launched on an already-discovered node")

	start.StampDiscovery(time.tick())
	onDiscovery(start)

	for _, child := range start.ChildNodes() {
		if !child.Discovered() {
			Dfs(child, onDiscovery, onFinish, time)
		}
	}

	start.StampFinish(time.tick())
	onFinish(start)
}

// FinishTimeLess is the total order on nodes by ascending finish time that
// the worklist uses to pick the next locus. Comparing a node whose finish
// time is still the unassigned sentinel is a usage-contract violation,
// not something this function detects at runtime.
func FinishTimeLess[N DfsNode[N]](a, b N) bool {
	return a.FinishTime() < b.FinishTime()
}
