package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockProgressStore is a mock implementation of ProgressStore for testing
type MockProgressStore struct {
	mu        sync.RWMutex
	positions map[string]*domain.Position
	SaveErr   error
}

// NewMockProgressStore creates a new MockProgressStore
func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{positions: make(map[string]*domain.Position)}
}

func (m *MockProgressStore) Get(ctx context.Context, bookID string) (*domain.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.positions[bookID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pos
	return &cp, nil
}

func (m *MockProgressStore) Save(ctx context.Context, bookID string, pos *domain.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *pos
	m.positions[bookID] = &cp
	return nil
}

// Seed stores a position without going through Save.
func (m *MockProgressStore) Seed(bookID string, pos domain.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[bookID] = &pos
}
