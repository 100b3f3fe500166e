package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReadingStatsStore = (*ReadingStatsStore)(nil)

const (
	dailyMinutesKey = "reading:daily_minutes"
	totalMinutesKey = "reading:total_minutes"
)

// ReadingStatsStore implements driven.ReadingStatsStore using Redis
type ReadingStatsStore struct {
	client *redis.Client
}

// NewReadingStatsStore creates a new Redis-backed ReadingStatsStore
func NewReadingStatsStore(client *redis.Client) *ReadingStatsStore {
	return &ReadingStatsStore{client: client}
}

// GetDaily retrieves the per-date minutes map
func (s *ReadingStatsStore) GetDaily(ctx context.Context) (domain.DailyMinutes, error) {
	data, err := s.client.Get(ctx, dailyMinutesKey).Bytes()
	if err == redis.Nil {
		return domain.DailyMinutes{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily minutes: %w", err)
	}

	var daily domain.DailyMinutes
	if err := json.Unmarshal(data, &daily); err != nil {
		return nil, fmt.Errorf("failed to unmarshal daily minutes: %w", err)
	}
	return daily, nil
}

// SaveDaily replaces the per-date minutes map
func (s *ReadingStatsStore) SaveDaily(ctx context.Context, minutes domain.DailyMinutes) error {
	data, err := json.Marshal(minutes)
	if err != nil {
		return fmt.Errorf("failed to marshal daily minutes: %w", err)
	}
	if err := s.client.Set(ctx, dailyMinutesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save daily minutes: %w", err)
	}
	return nil
}

// GetTotal retrieves lifetime minutes read
func (s *ReadingStatsStore) GetTotal(ctx context.Context) (int, error) {
	val, err := s.client.Get(ctx, totalMinutesKey).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get total minutes: %w", err)
	}
	total, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse total minutes: %w", err)
	}
	return total, nil
}

// SaveTotal stores lifetime minutes read
func (s *ReadingStatsStore) SaveTotal(ctx context.Context, minutes int) error {
	if err := s.client.Set(ctx, totalMinutesKey, minutes, 0).Err(); err != nil {
		return fmt.Errorf("failed to save total minutes: %w", err)
	}
	return nil
}
