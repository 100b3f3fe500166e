package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// OpenBook is the state of the currently open book.
type OpenBook struct {
	BookID string
	Doc    driven.Document
}

// ReaderService orchestrates the book open/close lifecycle, wiring the
// document, codec, annotations, position restore, theme, and session timer
// together.
type ReaderService interface {
	// Open closes any open book, then loads the book from the catalog,
	// restores its state, and starts a reading session
	Open(ctx context.Context, bookID string) (*OpenBook, error)

	// Close flushes the reading session and tears down per-book state.
	// Closing with no open book is a no-op.
	Close(ctx context.Context) error

	// Current returns the open book, ErrNotFound when none is open
	Current() (*OpenBook, error)

	// Display navigates the open book to a section ref or locator
	Display(ctx context.Context, target string) error
}
