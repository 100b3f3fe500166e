package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
	"github.com/kelvinzhao/epuber-core/internal/runtime"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsStore driven.SettingsStore
	aiFactory     driven.AIServiceFactory
	services      *runtime.Services
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsStore driven.SettingsStore,
	aiFactory driven.AIServiceFactory,
	services *runtime.Services,
) driving.SettingsService {
	return &settingsService{
		settingsStore: settingsStore,
		aiFactory:     aiFactory,
		services:      services,
	}
}

func (s *settingsService) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	settings, err := s.settingsStore.GetAISettings(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.AISettings{}, nil
		}
		return nil, err
	}
	if settings.APIKey != "" {
		settings.APIKey = "********"
	}
	return settings, nil
}

func (s *settingsService) UpdateAISettings(ctx context.Context, settings *domain.AISettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.settingsStore.SaveAISettings(ctx, settings); err != nil {
		return fmt.Errorf("saving ai settings: %w", err)
	}

	// Rebuild the active LLM service so the new settings take effect
	// without a restart.
	svc, err := s.aiFactory.CreateLLMService(settings)
	if err != nil {
		return fmt.Errorf("building llm service: %w", err)
	}
	s.services.SetLLMService(svc)
	return nil
}

func (s *settingsService) TestAIConnection(ctx context.Context, settings *domain.AISettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	svc, err := s.aiFactory.CreateLLMService(settings)
	if err != nil {
		return fmt.Errorf("building llm service: %w", err)
	}
	defer svc.Close()
	return svc.Ping(ctx)
}

func (s *settingsService) GetReaderSettings(ctx context.Context) (*domain.ReaderSettings, error) {
	settings, err := s.settingsStore.GetReaderSettings(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			def := domain.DefaultReaderSettings()
			return &def, nil
		}
		return nil, err
	}
	settings.Normalize()
	return settings, nil
}

func (s *settingsService) UpdateReaderSettings(ctx context.Context, settings *domain.ReaderSettings) error {
	settings.Normalize()
	return s.settingsStore.SaveReaderSettings(ctx, settings)
}
