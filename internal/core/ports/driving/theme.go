package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// ThemeService applies the reading theme to the rendering surface. The theme
// stylesheet must be reapplied on every section paint because a fresh paint
// starts from unstyled content.
type ThemeService interface {
	// Current returns the active theme
	Current() domain.Theme

	// Set switches the theme, applies it immediately, and persists the
	// choice
	Set(ctx context.Context, theme domain.Theme) error

	// HandleSectionPainted reinjects the theme stylesheet after a paint
	HandleSectionPainted(sectionRef string)
}
