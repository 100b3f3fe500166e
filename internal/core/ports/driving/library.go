package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// LibraryOverview aggregates the catalog for the shelf view.
type LibraryOverview struct {
	TotalBooks    int          `json:"totalBooks"`
	FinishedBooks int          `json:"finishedBooks"`
	TotalMinutes  int          `json:"totalMinutes"`
	LastRead      *domain.Book `json:"lastRead,omitempty"`
}

// LibraryService manages the book catalog.
type LibraryService interface {
	// List returns all cataloged books
	List(ctx context.Context) ([]*domain.Book, error)

	// Get returns a book by ID, ErrNotFound when absent
	Get(ctx context.Context, id string) (*domain.Book, error)

	// Add validates and catalogs a book
	Add(ctx context.Context, book *domain.Book) error

	// Remove deletes a book from the catalog
	Remove(ctx context.Context, id string) error

	// Overview aggregates catalog and reading-time stats
	Overview(ctx context.Context) (*LibraryOverview, error)
}
