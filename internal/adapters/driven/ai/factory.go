package ai

import (
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates LLM services from settings
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLMService creates an LLM service from settings
func (f *Factory) CreateLLMService(settings *domain.AISettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}
	return NewOpenAILLM(settings.APIKey, settings.Model, settings.BaseURL)
}
