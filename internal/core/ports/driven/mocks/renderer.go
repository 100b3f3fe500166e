package mocks

import (
	"context"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// DrawnOverlay records one overlay held by the mock renderer.
type DrawnOverlay struct {
	Color   string
	OnClick driven.OverlayClickHandler
}

// MockRenderer is a mock implementation of Renderer for testing. Events are
// fired synchronously through Fire helpers.
type MockRenderer struct {
	mu             sync.Mutex
	displayed      []string
	overlays       map[domain.Locator]DrawnOverlay
	styles         map[string]string
	viewport       domain.Viewport
	painted        []driven.SectionPaintedHandler
	settled        []driven.LocationSettledHandler
	DisplayErr     error
	DrawOverlayErr error
}

// NewMockRenderer creates a new MockRenderer with a 1000x800 viewport
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{
		overlays: make(map[domain.Locator]DrawnOverlay),
		styles:   make(map[string]string),
		viewport: domain.Viewport{Width: 1000, Height: 800},
	}
}

func (m *MockRenderer) Display(ctx context.Context, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DisplayErr != nil {
		return m.DisplayErr
	}
	m.displayed = append(m.displayed, target)
	return nil
}

func (m *MockRenderer) DrawOverlay(locator domain.Locator, color string, onClick driven.OverlayClickHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DrawOverlayErr != nil {
		return m.DrawOverlayErr
	}
	m.overlays[locator] = DrawnOverlay{Color: color, OnClick: onClick}
	return nil
}

func (m *MockRenderer) RemoveOverlay(locator domain.Locator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overlays, locator)
	return nil
}

func (m *MockRenderer) InjectStyle(id, css string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.styles[id] = css
	return nil
}

func (m *MockRenderer) OnSectionPainted(fn driven.SectionPaintedHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.painted = append(m.painted, fn)
}

func (m *MockRenderer) OnLocationSettled(fn driven.LocationSettledHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settled = append(m.settled, fn)
}

func (m *MockRenderer) Viewport() domain.Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

// SetViewport changes the viewport reported to callers.
func (m *MockRenderer) SetViewport(vp domain.Viewport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewport = vp
}

// FireSectionPainted invokes every registered paint handler.
func (m *MockRenderer) FireSectionPainted(sectionRef string) {
	m.mu.Lock()
	handlers := append([]driven.SectionPaintedHandler(nil), m.painted...)
	m.mu.Unlock()
	for _, fn := range handlers {
		fn(sectionRef)
	}
}

// FireLocationSettled invokes every registered settled handler.
func (m *MockRenderer) FireLocationSettled(sectionRef string, locator domain.Locator) {
	m.mu.Lock()
	handlers := append([]driven.LocationSettledHandler(nil), m.settled...)
	m.mu.Unlock()
	for _, fn := range handlers {
		fn(sectionRef, locator)
	}
}

// ClickOverlay simulates a click on a drawn overlay.
func (m *MockRenderer) ClickOverlay(locator domain.Locator) bool {
	m.mu.Lock()
	ov, ok := m.overlays[locator]
	m.mu.Unlock()
	if !ok || ov.OnClick == nil {
		return false
	}
	ov.OnClick(locator)
	return true
}

// Overlays returns a snapshot of the drawn overlays.
func (m *MockRenderer) Overlays() map[domain.Locator]DrawnOverlay {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[domain.Locator]DrawnOverlay, len(m.overlays))
	for k, v := range m.overlays {
		out[k] = v
	}
	return out
}

// Displayed returns the Display targets seen so far.
func (m *MockRenderer) Displayed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.displayed...)
}

// Style returns the stylesheet installed under an id.
func (m *MockRenderer) Style(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	css, ok := m.styles[id]
	return css, ok
}
