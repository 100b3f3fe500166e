package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements driven.CatalogStore using PostgreSQL
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// List retrieves all cataloged books
func (s *CatalogStore) List(ctx context.Context) ([]*domain.Book, error) {
	query := `
		SELECT id, title, author, path, cover_path, progress, last_read_at, added_at
		FROM books
		ORDER BY last_read_at DESC, added_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Path, &b.CoverPath, &b.Progress, &b.LastReadAt, &b.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}

// Get retrieves a book by ID
func (s *CatalogStore) Get(ctx context.Context, id string) (*domain.Book, error) {
	query := `
		SELECT id, title, author, path, cover_path, progress, last_read_at, added_at
		FROM books
		WHERE id = $1
	`

	var b domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Path, &b.CoverPath, &b.Progress, &b.LastReadAt, &b.AddedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &b, nil
}

// Save inserts or replaces a catalog record
func (s *CatalogStore) Save(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO books (id, title, author, path, cover_path, progress, last_read_at, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			path = EXCLUDED.path,
			cover_path = EXCLUDED.cover_path,
			progress = EXCLUDED.progress,
			last_read_at = EXCLUDED.last_read_at
	`

	_, err := s.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.Path, book.CoverPath, book.Progress, book.LastReadAt, book.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

// Delete removes a book from the catalog
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
