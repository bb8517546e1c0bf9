package flow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible collectors for a Context's solve
// activity, namespaced "flow_". Entirely optional — a Context with no
// WithMetrics option collects nothing and pays no overhead beyond the nil
// checks already present on the hot path.
type Metrics struct {
	worklistDepth *prometheus.GaugeVec
	worklistPops  *prometheus.CounterVec
	dfsDiscovered *prometheus.CounterVec
	accUpdates    *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
}

// NewMetrics registers flow's collectors against registry and returns a
// Metrics ready to pass to WithMetrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		worklistDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "flow",
			Name:      "worklist_depth",
			Help:      "Current number of active loci in the worklist.",
		}, []string{"context_id"}),

		worklistPops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flow",
			Name:      "worklist_pops_total",
			Help:      "Cumulative count of WorkUntilEmpty iterations (one per worklist pop).",
		}, []string{"context_id"}),

		dfsDiscovered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flow",
			Name:      "dfs_nodes_discovered_total",
			Help:      "Cumulative count of accumulators stamped by Dfs.",
		}, []string{"context_id"}),

		accUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flow",
			Name:      "accumulator_updates_total",
			Help:      "Cumulative count of ReactiveCell.update calls, split by whether the value changed.",
		}, []string{"context_id", "changed"}),

		solveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flow",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one discoverAndSolveFrom + WorkUntilEmpty pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"context_id"}),
	}
}

func (m *Metrics) setWorklistDepth(contextID string, depth int) {
	m.worklistDepth.WithLabelValues(contextID).Set(float64(depth))
}

func (m *Metrics) incWorklistPops(contextID string) {
	m.worklistPops.WithLabelValues(contextID).Inc()
}

func (m *Metrics) incDiscovered(contextID string) {
	m.dfsDiscovered.WithLabelValues(contextID).Inc()
}

func (m *Metrics) incUpdate(contextID string, changed bool) {
	label := "false"
	if changed {
		label = "true"
	}
	m.accUpdates.WithLabelValues(contextID, label).Inc()
}

func (m *Metrics) observeSolveDuration(contextID string, seconds float64) {
	m.solveDuration.WithLabelValues(contextID).Observe(seconds)
}
