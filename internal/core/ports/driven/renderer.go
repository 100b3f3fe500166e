package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// OverlayClickHandler is invoked when the user clicks a drawn overlay.
type OverlayClickHandler func(locator domain.Locator)

// SectionPaintedHandler is invoked after the renderer finishes painting a
// section. The ref identifies the painted spine item.
type SectionPaintedHandler func(sectionRef string)

// LocationSettledHandler is invoked when the visible location comes to rest
// after navigation or relayout.
type LocationSettledHandler func(sectionRef string, locator domain.Locator)

// Renderer abstracts the rendering surface that paints sections and hosts
// highlight overlays. Implementations may be a real embedded view or a
// headless surface driven over the wire.
type Renderer interface {
	// Display navigates to a target, either a bare section ref or a
	// locator string
	Display(ctx context.Context, target string) error

	// DrawOverlay paints a highlight overlay for the locator. Drawing an
	// overlay that is already present replaces it.
	DrawOverlay(locator domain.Locator, color string, onClick OverlayClickHandler) error

	// RemoveOverlay removes a previously drawn overlay. Removing an
	// unknown locator is a no-op.
	RemoveOverlay(locator domain.Locator) error

	// InjectStyle installs a stylesheet under a stable id, replacing any
	// sheet previously installed under the same id
	InjectStyle(id, css string) error

	// OnSectionPainted registers a handler for section paint events
	OnSectionPainted(fn SectionPaintedHandler)

	// OnLocationSettled registers a handler for settled-location events
	OnLocationSettled(fn LocationSettledHandler)

	// Viewport returns the current visible area in pixels
	Viewport() domain.Viewport
}
