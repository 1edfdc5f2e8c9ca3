package store

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"policyver-hq/nomos/pkg/graph"
	"policyver-hq/nomos/pkg/loader"
	"policyver-hq/nomos/pkg/telemetry/metrics"
)

// Store owns the process's policy graph. The graph is built lazily on first
// use and published behind an atomic pointer; a reload builds a brand-new
// graph and swaps the reference, never mutating a graph that readers may
// hold. On reload failure the previously published graph stays in place.
type Store struct {
	rulesDir string
	loader   *loader.Loader
	logger   *slog.Logger
	metrics  *metrics.Metrics

	current atomic.Pointer[graph.Graph]

	// buildMu serializes builds; readers never take it.
	buildMu sync.Mutex

	stateMu       sync.RWMutex
	lastLoadTime  time.Time
	lastLoadError error
}

// New creates a store over the given rule-base directory. A nil loader or
// logger selects defaults; metrics may be nil.
func New(rulesDir string, l *loader.Loader, logger *slog.Logger, m *metrics.Metrics) *Store {
	if l == nil {
		l = loader.New(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		rulesDir: rulesDir,
		loader:   l,
		logger:   logger,
		metrics:  m,
	}
}

// Graph returns the published policy graph, building it on first use. The
// returned graph is immutable; callers may query it concurrently and must
// not hold it across reloads if they want fresh data.
func (s *Store) Graph() (*graph.Graph, error) {
	if g := s.current.Load(); g != nil {
		return g, nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	// Another caller may have built while we waited.
	if g := s.current.Load(); g != nil {
		return g, nil
	}

	return s.build()
}

// Reload builds a brand-new graph from the rule base and atomically swaps it
// in. On failure the currently published graph is kept and the error is
// returned.
func (s *Store) Reload() error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	_, err := s.build()
	return err
}

// build loads the rule base and publishes the result. Caller holds buildMu.
func (s *Store) build() (*graph.Graph, error) {
	start := time.Now()

	g, err := s.loader.LoadDirectory(s.rulesDir)

	s.stateMu.Lock()
	s.lastLoadError = err
	if err == nil {
		s.lastLoadTime = time.Now()
	}
	s.stateMu.Unlock()

	if err != nil {
		s.metrics.ObserveLoad(time.Since(start), graph.Stats{}, err)
		s.logger.Error("rule base load failed, keeping previous graph",
			"dir", s.rulesDir,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	stats := g.Stats()
	s.current.Store(g)
	s.metrics.ObserveLoad(time.Since(start), stats, nil)
	s.logger.Info("policy graph published",
		"dir", s.rulesDir,
		"documents", stats.Documents,
		"clauses", stats.Clauses,
		"edges", stats.Edges,
		"unresolved_refs", stats.Unresolved,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return g, nil
}

// LastLoadTime returns the timestamp of the last successful load.
func (s *Store) LastLoadTime() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastLoadTime
}

// LastLoadError returns the error from the last load attempt, nil on success.
func (s *Store) LastLoadError() error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastLoadError
}
