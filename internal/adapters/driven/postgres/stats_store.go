package postgres

import (
	"context"
	"fmt"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReadingStatsStore = (*ReadingStatsStore)(nil)

// ReadingStatsStore implements driven.ReadingStatsStore using PostgreSQL
type ReadingStatsStore struct {
	db *DB
}

// NewReadingStatsStore creates a new ReadingStatsStore
func NewReadingStatsStore(db *DB) *ReadingStatsStore {
	return &ReadingStatsStore{db: db}
}

// GetDaily retrieves the per-date minutes map
func (s *ReadingStatsStore) GetDaily(ctx context.Context) (domain.DailyMinutes, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, minutes FROM reading_daily`)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily minutes: %w", err)
	}
	defer rows.Close()

	daily := domain.DailyMinutes{}
	for rows.Next() {
		var date string
		var minutes int
		if err := rows.Scan(&date, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily minutes: %w", err)
		}
		daily[date] = minutes
	}
	return daily, rows.Err()
}

// SaveDaily replaces the per-date minutes map
func (s *ReadingStatsStore) SaveDaily(ctx context.Context, minutes domain.DailyMinutes) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reading_daily`); err != nil {
		return fmt.Errorf("failed to clear daily minutes: %w", err)
	}
	for date, mins := range minutes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reading_daily (date, minutes) VALUES ($1, $2)`, date, mins,
		); err != nil {
			return fmt.Errorf("failed to insert daily minutes: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to save daily minutes: %w", err)
	}
	return nil
}

// GetTotal retrieves lifetime minutes read
func (s *ReadingStatsStore) GetTotal(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(minutes), 0) FROM reading_total`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get total minutes: %w", err)
	}
	return total, nil
}

// SaveTotal stores lifetime minutes read
func (s *ReadingStatsStore) SaveTotal(ctx context.Context, minutes int) error {
	query := `
		INSERT INTO reading_total (id, minutes) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET minutes = EXCLUDED.minutes
	`

	if _, err := s.db.ExecContext(ctx, query, minutes); err != nil {
		return fmt.Errorf("failed to save total minutes: %w", err)
	}
	return nil
}
