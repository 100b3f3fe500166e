package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockSettingsStore is a mock implementation of SettingsStore for testing
type MockSettingsStore struct {
	mu     sync.RWMutex
	ai     *domain.AISettings
	reader *domain.ReaderSettings
}

// NewMockSettingsStore creates a new MockSettingsStore
func NewMockSettingsStore() *MockSettingsStore {
	return &MockSettingsStore{}
}

func (m *MockSettingsStore) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ai == nil {
		return nil, domain.ErrNotFound
	}
	cp := *m.ai
	return &cp, nil
}

func (m *MockSettingsStore) SaveAISettings(ctx context.Context, settings *domain.AISettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.ai = &cp
	return nil
}

func (m *MockSettingsStore) GetReaderSettings(ctx context.Context) (*domain.ReaderSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.reader == nil {
		return nil, domain.ErrNotFound
	}
	cp := *m.reader
	return &cp, nil
}

func (m *MockSettingsStore) SaveReaderSettings(ctx context.Context, settings *domain.ReaderSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.reader = &cp
	return nil
}
