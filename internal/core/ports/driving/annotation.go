package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// AnnotationService manages a book's highlight set. The in-memory set is the
// source of truth while a book is open; every mutation is written through to
// the store before overlays are reconciled.
type AnnotationService interface {
	// Load replaces the working set with the stored highlights for a
	// book and reconciles overlays for each
	Load(ctx context.Context, bookID string) error

	// List returns the working set ordered by creation time
	List() []domain.Highlight

	// Create validates and adds a highlight, assigning its ID
	Create(ctx context.Context, h domain.Highlight) (*domain.Highlight, error)

	// Update applies a patch to an existing highlight
	Update(ctx context.Context, id int64, patch domain.HighlightPatch) (*domain.Highlight, error)

	// Delete removes a highlight and clears its overlay. Deleting an
	// unknown id is a no-op.
	Delete(ctx context.Context, id int64) error

	// Get returns a highlight by ID, ErrNotFound when absent
	Get(id int64) (*domain.Highlight, error)

	// FindByLocator returns the highlight addressing the locator,
	// ErrNotFound when none does
	FindByLocator(locator domain.Locator) (*domain.Highlight, error)

	// Clear drops the working set without touching the store, used when
	// a book is closed
	Clear()
}

// Reconciler receives annotation changes to keep the rendered overlays in
// step with the working set. AnnotationService calls it after each mutation.
type Reconciler interface {
	// Reconcile draws or redraws the overlay for a highlight
	Reconcile(h *domain.Highlight)

	// ClearOverlay removes the overlay for a locator
	ClearOverlay(locator domain.Locator)
}
