package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// SummaryService generates and stores per-chapter AI summaries for the open
// book. At most one generation runs per chapter; starting a new generation
// for a chapter supersedes the previous one, whose result is discarded.
type SummaryService interface {
	// SetDocument binds the open book's document, clearing any running
	// generations for the previous book
	SetDocument(bookID string, doc driven.Document)

	// Summaries returns the stored summaries for the open book, keyed
	// by section ref
	Summaries(ctx context.Context) (map[string]string, error)

	// Generate produces a summary for a chapter and stores it. Chapters
	// shorter than the configured minimum return ErrContentTooShort.
	// Cancellation stores nothing and returns ErrCancelled.
	Generate(ctx context.Context, sectionRef string) (string, error)

	// Cancel aborts a running generation for a chapter, no-op when none
	// is running
	Cancel(sectionRef string)

	// Generating reports whether a generation is running for a chapter
	Generating(sectionRef string) bool

	// RenderHTML converts a stored markdown summary to HTML
	RenderHTML(summary string) (string, error)
}
