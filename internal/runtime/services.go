package runtime

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services. The LLM
// service can be replaced at runtime when AI settings change. Thread-safe
// for concurrent access.
type Services struct {
	mu         sync.RWMutex
	llmService driven.LLMService
}

// NewServices creates a new Services registry
func NewServices() *Services {
	return &Services{}
}

// LLMService returns the current LLM service (may be nil)
func (s *Services) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// SetLLMService updates the LLM service, closing the old one if present
func (s *Services) SetLLMService(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil {
		_ = s.llmService.Close()
	}
	s.llmService = svc
}

// ValidateAndSetLLM validates connectivity before setting the LLM service
func (s *Services) ValidateAndSetLLM(ctx context.Context, svc driven.LLMService) error {
	if svc == nil {
		s.SetLLMService(nil)
		return nil
	}
	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}
	s.SetLLMService(svc)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil {
		_ = s.llmService.Close()
		s.llmService = nil
	}
	return nil
}
