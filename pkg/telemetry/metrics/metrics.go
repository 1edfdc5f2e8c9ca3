package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"policyver-hq/nomos/pkg/graph"
)

// Metrics tracks rule-base loading and query activity.
//
// Metrics:
//   - nomos_rulebase_loads_total: Rule-base load attempts by result
//   - nomos_rulebase_load_duration_seconds: Load duration
//   - nomos_rulebase_documents: Documents in the published graph
//   - nomos_rulebase_clauses: Clauses in the published graph
//   - nomos_rulebase_unresolved_refs: Dangling references in the published graph
//   - nomos_evaluations_total: Eligibility evaluations by verdict
//   - nomos_diffs_total: Clause diff computations
type Metrics struct {
	loadsTotal     *prometheus.CounterVec
	loadDuration   prometheus.Histogram
	documents      prometheus.Gauge
	clauses        prometheus.Gauge
	unresolvedRefs prometheus.Gauge

	evaluationsTotal *prometheus.CounterVec
	diffsTotal       prometheus.Counter
}

// New creates and registers the collectors with the provided registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nomos",
				Name:      "rulebase_loads_total",
				Help:      "Total number of rule-base load attempts",
			},
			[]string{"result"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "nomos",
				Name:      "rulebase_load_duration_seconds",
				Help:      "Duration of rule-base loads in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to 4s
			},
		),

		documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nomos",
			Name:      "rulebase_documents",
			Help:      "Documents in the currently published graph",
		}),

		clauses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nomos",
			Name:      "rulebase_clauses",
			Help:      "Clauses in the currently published graph",
		}),

		unresolvedRefs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nomos",
			Name:      "rulebase_unresolved_refs",
			Help:      "Dangling references in the currently published graph",
		}),

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nomos",
				Name:      "evaluations_total",
				Help:      "Total number of eligibility evaluations",
			},
			[]string{"verdict"},
		),

		diffsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nomos",
			Name:      "diffs_total",
			Help:      "Total number of clause diff computations",
		}),
	}

	registry.MustRegister(
		m.loadsTotal,
		m.loadDuration,
		m.documents,
		m.clauses,
		m.unresolvedRefs,
		m.evaluationsTotal,
		m.diffsTotal,
	)

	return m
}

// ObserveLoad records one load attempt and, on success, the published graph's
// node counts.
func (m *Metrics) ObserveLoad(duration time.Duration, stats graph.Stats, err error) {
	if m == nil {
		return
	}
	m.loadDuration.Observe(duration.Seconds())
	if err != nil {
		m.loadsTotal.WithLabelValues("error").Inc()
		return
	}
	m.loadsTotal.WithLabelValues("success").Inc()
	m.documents.Set(float64(stats.Documents))
	m.clauses.Set(float64(stats.Clauses))
	m.unresolvedRefs.Set(float64(stats.Unresolved))
}

// ObserveEvaluation records one eligibility evaluation.
func (m *Metrics) ObserveEvaluation(eligible bool) {
	if m == nil {
		return
	}
	if eligible {
		m.evaluationsTotal.WithLabelValues("eligible").Inc()
	} else {
		m.evaluationsTotal.WithLabelValues("ineligible").Inc()
	}
}

// ObserveDiff records one diff computation.
func (m *Metrics) ObserveDiff() {
	if m == nil {
		return
	}
	m.diffsTotal.Inc()
}
