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
var _ driven.ProgressStore = (*ProgressStore)(nil)

const progressPrefix = "progress:"

// ProgressStore implements driven.ProgressStore using Redis
type ProgressStore struct {
	client *redis.Client
}

// NewProgressStore creates a new Redis-backed ProgressStore
func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client}
}

// Get retrieves the stored position for a book
func (s *ProgressStore) Get(ctx context.Context, bookID string) (*domain.Position, error) {
	data, err := s.client.Get(ctx, progressPrefix+bookID).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	var pos domain.Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal position: %w", err)
	}
	return &pos, nil
}

// Save stores the position for a book
func (s *ProgressStore) Save(ctx context.Context, bookID string, pos *domain.Position) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("failed to marshal position: %w", err)
	}
	if err := s.client.Set(ctx, progressPrefix+bookID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}
