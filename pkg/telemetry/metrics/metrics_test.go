package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"policyver-hq/nomos/pkg/graph"
)

func TestObserveLoad(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveLoad(10*time.Millisecond, graph.Stats{Documents: 3, Clauses: 7, Unresolved: 1}, nil)
	m.ObserveLoad(5*time.Millisecond, graph.Stats{}, errors.New("boom"))

	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("loads_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("loads_total{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.documents); got != 3 {
		t.Errorf("documents = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.clauses); got != 7 {
		t.Errorf("clauses = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.unresolvedRefs); got != 1 {
		t.Errorf("unresolved_refs = %v, want 1", got)
	}
}

func TestObserveLoadFailureKeepsGauges(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveLoad(time.Millisecond, graph.Stats{Documents: 2, Clauses: 4}, nil)
	m.ObserveLoad(time.Millisecond, graph.Stats{}, errors.New("load failed"))

	// A failed load keeps the gauges describing the still-published graph.
	if got := testutil.ToFloat64(m.clauses); got != 4 {
		t.Errorf("clauses = %v, want 4 after failed reload", got)
	}
}

func TestObserveEvaluation(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveEvaluation(true)
	m.ObserveEvaluation(true)
	m.ObserveEvaluation(false)

	if got := testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("eligible")); got != 2 {
		t.Errorf("evaluations_total{eligible} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("ineligible")); got != 1 {
		t.Errorf("evaluations_total{ineligible} = %v, want 1", got)
	}
}

func TestObserveDiff(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveDiff()
	m.ObserveDiff()

	if got := testutil.ToFloat64(m.diffsTotal); got != 2 {
		t.Errorf("diffs_total = %v, want 2", got)
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveLoad(time.Second, graph.Stats{}, nil)
	m.ObserveEvaluation(true)
	m.ObserveDiff()
}
