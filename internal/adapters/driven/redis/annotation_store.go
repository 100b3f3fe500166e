package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

const highlightPrefix = "highlights:"

// AnnotationStore implements driven.AnnotationStore using Redis. Each book's
// highlights live under one key as a JSON array, written whole on every save.
type AnnotationStore struct {
	client *redis.Client
}

// NewAnnotationStore creates a new Redis-backed AnnotationStore
func NewAnnotationStore(client *redis.Client) *AnnotationStore {
	return &AnnotationStore{client: client}
}

// LoadAll retrieves every highlight for a book
func (s *AnnotationStore) LoadAll(ctx context.Context, bookID string) ([]domain.Highlight, error) {
	data, err := s.client.Get(ctx, highlightPrefix+bookID).Bytes()
	if err == redis.Nil {
		return []domain.Highlight{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get highlights: %w", err)
	}

	var highlights []domain.Highlight
	if err := json.Unmarshal(data, &highlights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal highlights: %w", err)
	}
	return highlights, nil
}

// SaveAll replaces the stored highlight set for a book
func (s *AnnotationStore) SaveAll(ctx context.Context, bookID string, highlights []domain.Highlight) error {
	if highlights == nil {
		highlights = []domain.Highlight{}
	}
	data, err := json.Marshal(highlights)
	if err != nil {
		return fmt.Errorf("failed to marshal highlights: %w", err)
	}
	if err := s.client.Set(ctx, highlightPrefix+bookID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save highlights: %w", err)
	}
	return nil
}
