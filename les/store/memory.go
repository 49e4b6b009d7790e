// Package store provides les.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/scott198989/milpay-engine/les"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	records     map[string]les.Record
	comparisons []les.Comparison // most recent first
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]les.Record)}
}

func (m *Memory) SaveRecord(_ context.Context, r les.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.ID] = r
	return nil
}

func (m *Memory) Record(_ context.Context, id string) (les.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return les.Record{}, &les.NotFoundError{Kind: "record", ID: id}
	}
	return r, nil
}

func (m *Memory) Records(_ context.Context) ([]les.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]les.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) DeleteRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return &les.NotFoundError{Kind: "record", ID: id}
	}
	delete(m.records, id)
	return nil
}

// SaveComparison prepends: the list is kept most-recent-first so the
// latest comparison is always index 0.
func (m *Memory) SaveComparison(_ context.Context, c les.Comparison) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparisons = append([]les.Comparison{c}, m.comparisons...)
	return nil
}

func (m *Memory) Comparisons(_ context.Context) ([]les.Comparison, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]les.Comparison, len(m.comparisons))
	copy(out, m.comparisons)
	return out, nil
}

func (m *Memory) DeleteComparison(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.comparisons {
		if c.ID == id {
			m.comparisons = append(m.comparisons[:i], m.comparisons[i+1:]...)
			return nil
		}
	}
	return &les.NotFoundError{Kind: "comparison", ID: id}
}

func (m *Memory) DeleteComparisonsFor(_ context.Context, recordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.comparisons[:0]
	for _, c := range m.comparisons {
		if c.PreviousID != recordID && c.CurrentID != recordID {
			kept = append(kept, c)
		}
	}
	m.comparisons = kept
	return nil
}

var _ les.Store = (*Memory)(nil)
