package driven

import (
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// AIServiceFactory builds LLM services from settings. Used to rebuild the
// active service when the user changes AI settings at runtime.
type AIServiceFactory interface {
	// CreateLLMService builds an LLM service from the given settings.
	// Unconfigured settings return ErrNotConfigured.
	CreateLLMService(settings *domain.AISettings) (LLMService, error)
}
