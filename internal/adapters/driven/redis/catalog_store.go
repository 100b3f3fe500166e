package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CatalogStore = (*CatalogStore)(nil)

const (
	bookPrefix = "book:"
	bookSetKey = "books"
)

// CatalogStore implements driven.CatalogStore using Redis. Each book is a
// JSON value under its own key; a set tracks all book IDs for listing.
type CatalogStore struct {
	client *redis.Client
}

// NewCatalogStore creates a new Redis-backed CatalogStore
func NewCatalogStore(client *redis.Client) *CatalogStore {
	return &CatalogStore{client: client}
}

// List retrieves all cataloged books
func (s *CatalogStore) List(ctx context.Context) ([]*domain.Book, error) {
	ids, err := s.client.SMembers(ctx, bookSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list book ids: %w", err)
	}
	books := make([]*domain.Book, 0, len(ids))
	for _, id := range ids {
		book, err := s.Get(ctx, id)
		if err == domain.ErrNotFound {
			// Stale set member, skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// Get retrieves a book by ID
func (s *CatalogStore) Get(ctx context.Context, id string) (*domain.Book, error) {
	data, err := s.client.Get(ctx, bookPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	var book domain.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}
	return &book, nil
}

// Save inserts or replaces a catalog record
func (s *CatalogStore) Save(ctx context.Context, book *domain.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, bookPrefix+book.ID, data, 0)
	pipe.SAdd(ctx, bookSetKey, book.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

// Delete removes a book from the catalog
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, bookPrefix+id)
	pipe.SRem(ctx, bookSetKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
