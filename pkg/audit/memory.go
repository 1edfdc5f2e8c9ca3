package audit

import (
	"context"
	"sync"
)

// MemoryBackend keeps decisions in memory. Intended for tests and for
// deployments that only want the most recent decisions for debugging.
type MemoryBackend struct {
	mu       sync.RWMutex
	records  []*Decision
	capacity int
}

// NewMemoryBackend creates an in-memory backend. capacity <= 0 means
// unbounded; otherwise the oldest records are evicted.
func NewMemoryBackend(capacity int) *MemoryBackend {
	return &MemoryBackend{capacity: capacity}
}

// Store appends a decision, evicting the oldest when over capacity.
func (b *MemoryBackend) Store(ctx context.Context, d *Decision) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := *d
	b.records = append(b.records, &copied)
	if b.capacity > 0 && len(b.records) > b.capacity {
		b.records = b.records[len(b.records)-b.capacity:]
	}
	return nil
}

// QueryByPolicy returns the most recent decisions for a policy, newest first.
func (b *MemoryBackend) QueryByPolicy(ctx context.Context, policyID string, limit int) ([]*Decision, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var results []*Decision
	for i := len(b.records) - 1; i >= 0; i-- {
		if b.records[i].PolicyID != policyID {
			continue
		}
		copied := *b.records[i]
		results = append(results, &copied)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Close is a no-op for the memory backend.
func (b *MemoryBackend) Close() error {
	return nil
}
