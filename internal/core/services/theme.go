package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Ensure themeService implements ThemeService
var _ driving.ThemeService = (*themeService)(nil)

// themeService implements the ThemeService interface
type themeService struct {
	mu       sync.Mutex
	renderer driven.Renderer
	settings driven.SettingsStore
	logger   *slog.Logger

	current domain.Theme
}

// NewThemeService creates a new ThemeService, loading the persisted theme
// choice if one exists.
func NewThemeService(ctx context.Context, renderer driven.Renderer, settings driven.SettingsStore, logger *slog.Logger) driving.ThemeService {
	if logger == nil {
		logger = slog.Default()
	}
	current := domain.ThemeLight
	if rs, err := settings.GetReaderSettings(ctx); err == nil {
		rs.Normalize()
		current = rs.Theme
	} else if !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("reader settings load failed, using light theme", "error", err)
	}
	return &themeService{
		renderer: renderer,
		settings: settings,
		logger:   logger,
		current:  current,
	}
}

func (s *themeService) Current() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *themeService) Set(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q: %w", theme, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	s.current = theme
	s.mu.Unlock()

	if err := s.renderer.InjectStyle(domain.ThemeStyleID, theme.Stylesheet()); err != nil {
		s.logger.Warn("theme injection failed", "theme", theme, "error", err)
	}

	rs, err := s.settings.GetReaderSettings(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("loading reader settings: %w", err)
		}
		def := domain.DefaultReaderSettings()
		rs = &def
	}
	rs.Theme = theme
	if err := s.settings.SaveReaderSettings(ctx, rs); err != nil {
		return fmt.Errorf("saving reader settings: %w", err)
	}
	return nil
}

func (s *themeService) HandleSectionPainted(sectionRef string) {
	s.mu.Lock()
	theme := s.current
	s.mu.Unlock()

	// A fresh paint starts unstyled, so the sheet is reinstalled under
	// its stable id on every paint.
	if err := s.renderer.InjectStyle(domain.ThemeStyleID, theme.Stylesheet()); err != nil {
		s.logger.Warn("theme reinjection failed", "section", sectionRef, "error", err)
	}
}
