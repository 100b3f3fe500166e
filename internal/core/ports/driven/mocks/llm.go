package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockLLMService is a mock implementation of LLMService for testing. By
// default it echoes a canned reply; set Block to make Complete wait for ctx
// cancellation, which exercises cancellation paths.
type MockLLMService struct {
	mu           sync.Mutex
	Reply        string
	CompleteErr  error
	Block        bool
	calls        []string
	systemPrompt string
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService(reply string) *MockLLMService {
	return &MockLLMService{Reply: reply}
}

func (m *MockLLMService) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, user)
	m.systemPrompt = system
	block := m.Block
	err := m.CompleteErr
	reply := m.Reply
	m.mu.Unlock()

	if err != nil {
		return "", err
	}
	if block {
		<-ctx.Done()
		return "", domain.ErrCancelled
	}
	if ctx.Err() != nil {
		return "", domain.ErrCancelled
	}
	return reply, nil
}

func (m *MockLLMService) Model() string                  { return "mock-model" }
func (m *MockLLMService) Ping(ctx context.Context) error { return nil }
func (m *MockLLMService) Close() error                   { return nil }

// Calls returns the user messages seen so far.
func (m *MockLLMService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LastSystemPrompt returns the system prompt of the most recent call.
func (m *MockLLMService) LastSystemPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.systemPrompt
}
