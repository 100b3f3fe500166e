package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// SettingsService manages AI and reader settings. Updating AI settings
// rebuilds the active LLM service so the change takes effect without a
// restart.
type SettingsService interface {
	// GetAISettings returns stored AI settings with the API key redacted
	GetAISettings(ctx context.Context) (*domain.AISettings, error)

	// UpdateAISettings validates, persists, and hot-reloads AI settings
	UpdateAISettings(ctx context.Context, settings *domain.AISettings) error

	// TestAIConnection pings the backend described by the settings
	TestAIConnection(ctx context.Context, settings *domain.AISettings) error

	// GetReaderSettings returns stored reader settings, defaults when
	// never saved
	GetReaderSettings(ctx context.Context) (*domain.ReaderSettings, error)

	// UpdateReaderSettings persists reader settings
	UpdateReaderSettings(ctx context.Context, settings *domain.ReaderSettings) error
}
