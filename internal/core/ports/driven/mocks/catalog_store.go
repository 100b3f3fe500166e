package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockCatalogStore is a mock implementation of CatalogStore for testing
type MockCatalogStore struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
}

// NewMockCatalogStore creates a new MockCatalogStore
func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{books: make(map[string]*domain.Book)}
}

func (m *MockCatalogStore) List(ctx context.Context) ([]*domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Book, 0, len(m.books))
	for _, b := range m.books {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockCatalogStore) Get(ctx context.Context, id string) (*domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MockCatalogStore) Save(ctx context.Context, book *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *book
	m.books[book.ID] = &cp
	return nil
}

func (m *MockCatalogStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
	return nil
}
