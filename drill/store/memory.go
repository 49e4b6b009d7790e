// Package store provides drill.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/scott198989/milpay-engine/drill"
	"github.com/scott198989/milpay-engine/rates"
)

// Memory is the in-memory drill.Store for tests and dev.
type Memory struct {
	mu        sync.RWMutex
	schedules map[string]drill.Schedule
}

func NewMemory() *Memory {
	return &Memory{schedules: make(map[string]drill.Schedule)}
}

func (m *Memory) SaveSchedule(_ context.Context, s drill.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.ID] = s
	return nil
}

func (m *Memory) Schedule(_ context.Context, id string) (drill.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	if !ok {
		return drill.Schedule{}, drill.ErrScheduleNotFound
	}
	return s, nil
}

func (m *Memory) ScheduleForYear(_ context.Context, fiscalYear int, branch rates.Branch) (drill.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.schedules {
		if s.FiscalYear == fiscalYear && s.Branch == branch {
			return s, nil
		}
	}
	return drill.Schedule{}, drill.ErrScheduleNotFound
}

func (m *Memory) Schedules(_ context.Context) ([]drill.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]drill.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (m *Memory) DeleteSchedule(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[id]; !ok {
		return drill.ErrScheduleNotFound
	}
	delete(m.schedules, id)
	return nil
}

var _ drill.Store = (*Memory)(nil)
