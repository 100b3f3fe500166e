package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// SettingsStore persists AI and reader settings.
type SettingsStore interface {
	// GetAISettings retrieves stored AI settings, ErrNotFound when never
	// saved
	GetAISettings(ctx context.Context) (*domain.AISettings, error)

	// SaveAISettings persists AI settings
	SaveAISettings(ctx context.Context, settings *domain.AISettings) error

	// GetReaderSettings retrieves stored reader settings, ErrNotFound
	// when never saved
	GetReaderSettings(ctx context.Context) (*domain.ReaderSettings, error)

	// SaveReaderSettings persists reader settings
	SaveReaderSettings(ctx context.Context, settings *domain.ReaderSettings) error
}
