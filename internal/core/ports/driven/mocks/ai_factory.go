package mocks

import (
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// MockAIServiceFactory is a mock implementation of AIServiceFactory for testing
type MockAIServiceFactory struct {
	mu        sync.Mutex
	Service   driven.LLMService
	CreateErr error
	created   []*domain.AISettings
}

// NewMockAIServiceFactory creates a factory that always returns svc
func NewMockAIServiceFactory(svc driven.LLMService) *MockAIServiceFactory {
	return &MockAIServiceFactory{Service: svc}
}

func (m *MockAIServiceFactory) CreateLLMService(settings *domain.AISettings) (driven.LLMService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if !settings.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}
	cp := *settings
	m.created = append(m.created, &cp)
	return m.Service, nil
}

// Created returns the settings passed to CreateLLMService so far.
func (m *MockAIServiceFactory) Created() []*domain.AISettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AISettings(nil), m.created...)
}
