package driven

import "context"

// SummaryStore persists generated chapter summaries per book, keyed by
// section ref.
type SummaryStore interface {
	// GetAll retrieves every stored summary for a book. No summaries
	// returns an empty map.
	GetAll(ctx context.Context, bookID string) (map[string]string, error)

	// Save stores one chapter summary
	Save(ctx context.Context, bookID, sectionRef, summary string) error

	// Delete removes one chapter summary
	Delete(ctx context.Context, bookID, sectionRef string) error
}
