// Package metrics provides Prometheus collectors for rule-base loading,
// eligibility evaluations, and diff computations.
//
// Collectors are registered against an injected *prometheus.Registry, never
// the global default, so multiple instances can coexist in tests. All Observe
// methods are safe on a nil *Metrics, letting callers skip wiring metrics
// entirely.
package metrics
