package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockAnnotationStore is a mock implementation of AnnotationStore for testing
type MockAnnotationStore struct {
	mu         sync.RWMutex
	byBook     map[string][]domain.Highlight
	SaveErr    error
	LoadErr    error
	SaveCalled int
}

// NewMockAnnotationStore creates a new MockAnnotationStore
func NewMockAnnotationStore() *MockAnnotationStore {
	return &MockAnnotationStore{byBook: make(map[string][]domain.Highlight)}
}

func (m *MockAnnotationStore) LoadAll(ctx context.Context, bookID string) ([]domain.Highlight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]domain.Highlight, len(m.byBook[bookID]))
	copy(out, m.byBook[bookID])
	return out, nil
}

func (m *MockAnnotationStore) SaveAll(ctx context.Context, bookID string, highlights []domain.Highlight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalled++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	stored := make([]domain.Highlight, len(highlights))
	copy(stored, highlights)
	m.byBook[bookID] = stored
	return nil
}

// Stored returns the highlights saved for a book.
func (m *MockAnnotationStore) Stored(bookID string) []domain.Highlight {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byBook[bookID]
}
