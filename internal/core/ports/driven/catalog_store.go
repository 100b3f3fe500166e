package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// CatalogStore persists the book catalog.
type CatalogStore interface {
	// List retrieves all cataloged books
	List(ctx context.Context) ([]*domain.Book, error)

	// Get retrieves a book by ID, ErrNotFound when absent
	Get(ctx context.Context, id string) (*domain.Book, error)

	// Save inserts or replaces a catalog record
	Save(ctx context.Context, book *domain.Book) error

	// Delete removes a book from the catalog
	Delete(ctx context.Context, id string) error
}
