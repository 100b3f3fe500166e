package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockChatStore is a mock implementation of ChatStore for testing
type MockChatStore struct {
	mu      sync.RWMutex
	history map[string][]domain.ChatMessage
	pinned  []domain.ChatMessage
}

// NewMockChatStore creates a new MockChatStore
func NewMockChatStore() *MockChatStore {
	return &MockChatStore{history: make(map[string][]domain.ChatMessage)}
}

func (m *MockChatStore) History(ctx context.Context, bookID string) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ChatMessage, len(m.history[bookID]))
	copy(out, m.history[bookID])
	return out, nil
}

func (m *MockChatStore) SaveHistory(ctx context.Context, bookID string, msgs []domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]domain.ChatMessage, len(msgs))
	copy(stored, msgs)
	m.history[bookID] = stored
	return nil
}

func (m *MockChatStore) Pinned(ctx context.Context) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ChatMessage, len(m.pinned))
	copy(out, m.pinned)
	return out, nil
}

func (m *MockChatStore) SavePinned(ctx context.Context, msgs []domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]domain.ChatMessage, len(msgs))
	copy(stored, msgs)
	m.pinned = stored
	return nil
}
