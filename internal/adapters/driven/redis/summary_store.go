package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SummaryStore = (*SummaryStore)(nil)

const summaryPrefix = "summaries:"

// SummaryStore implements driven.SummaryStore using Redis. Each book's
// summaries live in one hash keyed by section ref.
type SummaryStore struct {
	client *redis.Client
}

// NewSummaryStore creates a new Redis-backed SummaryStore
func NewSummaryStore(client *redis.Client) *SummaryStore {
	return &SummaryStore{client: client}
}

// GetAll retrieves every stored summary for a book
func (s *SummaryStore) GetAll(ctx context.Context, bookID string) (map[string]string, error) {
	all, err := s.client.HGetAll(ctx, summaryPrefix+bookID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get summaries: %w", err)
	}
	return all, nil
}

// Save stores one chapter summary
func (s *SummaryStore) Save(ctx context.Context, bookID, sectionRef, summary string) error {
	if err := s.client.HSet(ctx, summaryPrefix+bookID, sectionRef, summary).Err(); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

// Delete removes one chapter summary
func (s *SummaryStore) Delete(ctx context.Context, bookID, sectionRef string) error {
	if err := s.client.HDel(ctx, summaryPrefix+bookID, sectionRef).Err(); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}
