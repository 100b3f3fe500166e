package mocks

import (
	"context"
	"sync"
)

// MockSummaryStore is a mock implementation of SummaryStore for testing
type MockSummaryStore struct {
	mu        sync.RWMutex
	summaries map[string]map[string]string
}

// NewMockSummaryStore creates a new MockSummaryStore
func NewMockSummaryStore() *MockSummaryStore {
	return &MockSummaryStore{summaries: make(map[string]map[string]string)}
}

func (m *MockSummaryStore) GetAll(ctx context.Context, bookID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.summaries[bookID]))
	for k, v := range m.summaries[bookID] {
		out[k] = v
	}
	return out, nil
}

func (m *MockSummaryStore) Save(ctx context.Context, bookID, sectionRef, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.summaries[bookID] == nil {
		m.summaries[bookID] = make(map[string]string)
	}
	m.summaries[bookID][sectionRef] = summary
	return nil
}

func (m *MockSummaryStore) Delete(ctx context.Context, bookID, sectionRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.summaries[bookID], sectionRef)
	return nil
}
