package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// ReadingStats is an aggregate view of accumulated reading time.
type ReadingStats struct {
	Daily        domain.DailyMinutes `json:"daily"`
	TotalMinutes int                 `json:"totalMinutes"`
}

// SessionService accumulates reading time. A session starts when a book
// opens and is flushed when it closes or the process shuts down.
type SessionService interface {
	// Start marks the beginning of a reading session. Starting while a
	// session is open restarts the clock.
	Start()

	// Flush converts the open session into minutes and persists them.
	// Sessions under one minute are discarded. On store failure the
	// measured interval is kept and a retry persists it exactly once.
	Flush(ctx context.Context) error

	// Active reports whether a session is open
	Active() bool

	// Stats returns accumulated daily and total reading time
	Stats(ctx context.Context) (*ReadingStats, error)
}
