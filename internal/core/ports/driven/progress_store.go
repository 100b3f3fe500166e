package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// ProgressStore persists the last settled reading position per book.
type ProgressStore interface {
	// Get retrieves the stored position for a book. Books never opened
	// return ErrNotFound.
	Get(ctx context.Context, bookID string) (*domain.Position, error)

	// Save stores the position for a book
	Save(ctx context.Context, bookID string, pos *domain.Position) error
}
