package driven

import (
	"context"
)

// LLMService provides chat completions from an OpenAI-compatible backend.
type LLMService interface {
	// Complete sends a system prompt and user message and returns the
	// assistant reply. Cancelling ctx aborts the request with
	// ErrCancelled.
	Complete(ctx context.Context, system, user string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the backend is reachable
	Ping(ctx context.Context) error

	// Close releases resources held by the service
	Close() error
}
