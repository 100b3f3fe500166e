package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProgressStore = (*ProgressStore)(nil)

// ProgressStore implements driven.ProgressStore using PostgreSQL
type ProgressStore struct {
	db *DB
}

// NewProgressStore creates a new ProgressStore
func NewProgressStore(db *DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// Get retrieves the stored position for a book
func (s *ProgressStore) Get(ctx context.Context, bookID string) (*domain.Position, error) {
	var pos domain.Position
	var locator string
	err := s.db.QueryRowContext(ctx,
		`SELECT section_ref, locator FROM positions WHERE book_id = $1`, bookID,
	).Scan(&pos.SectionRef, &locator)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	pos.Locator = domain.Locator(locator)
	return &pos, nil
}

// Save stores the position for a book
func (s *ProgressStore) Save(ctx context.Context, bookID string, pos *domain.Position) error {
	query := `
		INSERT INTO positions (book_id, section_ref, locator)
		VALUES ($1, $2, $3)
		ON CONFLICT (book_id) DO UPDATE SET
			section_ref = EXCLUDED.section_ref,
			locator = EXCLUDED.locator
	`

	_, err := s.db.ExecContext(ctx, query, bookID, pos.SectionRef, string(pos.Locator))
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}
