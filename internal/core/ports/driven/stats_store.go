package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// ReadingStatsStore persists accumulated reading time across all books.
type ReadingStatsStore interface {
	// GetDaily retrieves the per-date minutes map. No data yet returns
	// an empty map, not an error.
	GetDaily(ctx context.Context) (domain.DailyMinutes, error)

	// SaveDaily replaces the per-date minutes map
	SaveDaily(ctx context.Context, minutes domain.DailyMinutes) error

	// GetTotal retrieves lifetime minutes read. No data yet returns 0.
	GetTotal(ctx context.Context) (int, error)

	// SaveTotal stores lifetime minutes read
	SaveTotal(ctx context.Context, minutes int) error
}
