package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// AnnotationStore persists a book's highlights as one document per book.
type AnnotationStore interface {
	// LoadAll retrieves every highlight for a book. A book with no
	// highlights returns an empty slice, not an error.
	LoadAll(ctx context.Context, bookID string) ([]domain.Highlight, error)

	// SaveAll replaces the stored highlight set for a book
	SaveAll(ctx context.Context, bookID string, highlights []domain.Highlight) error
}
