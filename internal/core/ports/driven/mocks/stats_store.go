package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockReadingStatsStore is a mock implementation of ReadingStatsStore for testing
type MockReadingStatsStore struct {
	mu           sync.RWMutex
	daily        domain.DailyMinutes
	total        int
	SaveErr      error
	TotalSaveErr error
}

// NewMockReadingStatsStore creates a new MockReadingStatsStore
func NewMockReadingStatsStore() *MockReadingStatsStore {
	return &MockReadingStatsStore{daily: make(domain.DailyMinutes)}
}

func (m *MockReadingStatsStore) GetDaily(ctx context.Context) (domain.DailyMinutes, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(domain.DailyMinutes, len(m.daily))
	for k, v := range m.daily {
		out[k] = v
	}
	return out, nil
}

func (m *MockReadingStatsStore) SaveDaily(ctx context.Context, minutes domain.DailyMinutes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.daily = minutes
	return nil
}

func (m *MockReadingStatsStore) GetTotal(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total, nil
}

func (m *MockReadingStatsStore) SaveTotal(ctx context.Context, minutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.TotalSaveErr != nil {
		return m.TotalSaveErr
	}
	m.total = minutes
	return nil
}

// Daily returns the stored daily map.
func (m *MockReadingStatsStore) Daily() domain.DailyMinutes {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.daily
}

// Total returns the stored lifetime minutes.
func (m *MockReadingStatsStore) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}
