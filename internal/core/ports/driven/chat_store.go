package driven

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// ChatStore persists per-book conversation history and the cross-book pinned
// message collection.
type ChatStore interface {
	// History retrieves a book's conversation, oldest first. No history
	// returns an empty slice.
	History(ctx context.Context, bookID string) ([]domain.ChatMessage, error)

	// SaveHistory replaces a book's conversation
	SaveHistory(ctx context.Context, bookID string, msgs []domain.ChatMessage) error

	// Pinned retrieves all pinned messages across books
	Pinned(ctx context.Context) ([]domain.ChatMessage, error)

	// SavePinned replaces the pinned collection
	SavePinned(ctx context.Context, msgs []domain.ChatMessage) error
}
