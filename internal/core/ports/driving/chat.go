package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// ChatService runs a per-book conversation with the AI backend. History is
// persisted after every turn; pinned messages are collected across books.
type ChatService interface {
	// SetBook binds the open book, cancelling any in-flight request for
	// the previous one
	SetBook(bookID, title, author string)

	// History returns the open book's conversation, oldest first
	History(ctx context.Context) ([]domain.ChatMessage, error)

	// Send appends the user message, requests a completion, and appends
	// the assistant reply. A cancelled request appends the cancellation
	// marker instead and returns ErrCancelled.
	Send(ctx context.Context, content string) (*domain.ChatMessage, error)

	// Cancel aborts an in-flight request, no-op when none is running
	Cancel()

	// ClearHistory drops the open book's conversation
	ClearHistory(ctx context.Context) error

	// Pin adds a message to the pinned collection
	Pin(ctx context.Context, msg domain.ChatMessage) error

	// Unpin removes a message from the pinned collection by book and
	// timestamp
	Unpin(ctx context.Context, bookID string, timestamp int64) error

	// Pinned returns all pinned messages across books
	Pinned(ctx context.Context) ([]domain.ChatMessage, error)
}
