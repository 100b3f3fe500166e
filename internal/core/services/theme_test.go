package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven/mocks"
)

func TestThemeSetInjectsAndPersists(t *testing.T) {
	renderer := mocks.NewMockRenderer()
	settings := mocks.NewMockSettingsStore()
	svc := NewThemeService(context.Background(), renderer, settings, nil)

	if err := svc.Set(context.Background(), domain.ThemeDark); err != nil {
		t.Fatalf("set: %v", err)
	}
	css, ok := renderer.Style(domain.ThemeStyleID)
	if !ok {
		t.Fatal("theme stylesheet should be injected under the stable id")
	}
	if !strings.Contains(css, "#1a1b1e") {
		t.Errorf("dark stylesheet expected, got %q", css)
	}

	stored, err := settings.GetReaderSettings(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if stored.Theme != domain.ThemeDark {
		t.Errorf("theme choice should be persisted, got %q", stored.Theme)
	}
}

func TestThemeSetUnknownTheme(t *testing.T) {
	svc := NewThemeService(context.Background(), mocks.NewMockRenderer(), mocks.NewMockSettingsStore(), nil)
	if err := svc.Set(context.Background(), "sepia"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestThemeReinjectedOnPaint(t *testing.T) {
	renderer := mocks.NewMockRenderer()
	settings := mocks.NewMockSettingsStore()
	svc := NewThemeService(context.Background(), renderer, settings, nil)
	if err := svc.Set(context.Background(), domain.ThemeDark); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A repaint wipes injected styles; the handler restores them.
	renderer.InjectStyle(domain.ThemeStyleID, "")
	svc.HandleSectionPainted("ch01.xhtml")

	css, _ := renderer.Style(domain.ThemeStyleID)
	if css != domain.ThemeDark.Stylesheet() {
		t.Error("paint handler should reinject the active theme stylesheet")
	}
}

func TestThemeLoadsPersistedChoice(t *testing.T) {
	settings := mocks.NewMockSettingsStore()
	rs := domain.DefaultReaderSettings()
	rs.Theme = domain.ThemeDark
	settings.SaveReaderSettings(context.Background(), &rs)

	svc := NewThemeService(context.Background(), mocks.NewMockRenderer(), settings, nil)
	if svc.Current() != domain.ThemeDark {
		t.Errorf("persisted theme should be loaded, got %q", svc.Current())
	}
}
