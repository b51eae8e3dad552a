package state

import (
	"context"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu      sync.Mutex
	session *Session
	saves   []Session
	recent  []RecentSource
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	s := *m.session
	return &s, nil
}

func (m *Mock) SaveSession(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	m.saves = append(m.saves, s)
}

func (m *Mock) SaveSessionNow(_ context.Context, s Session) error {
	m.SaveSession(s)
	return nil
}

func (m *Mock) RecentSources(limit int) ([]RecentSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecentSource(nil), m.recent[:min(max(limit, 0), len(m.recent))]...), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
}

func (m *Mock) SetRecent(sources []RecentSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = sources
}

// Saves returns every session saved, in order.
func (m *Mock) Saves() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Session(nil), m.saves...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
