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
var _ driven.SettingsStore = (*SettingsStore)(nil)

const (
	aiSettingsKey     = "settings:ai"
	readerSettingsKey = "settings:reader"
)

// SettingsStore implements driven.SettingsStore using Redis
type SettingsStore struct {
	client *redis.Client
}

// NewSettingsStore creates a new Redis-backed SettingsStore
func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{client: client}
}

// GetAISettings retrieves stored AI settings
func (s *SettingsStore) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	data, err := s.client.Get(ctx, aiSettingsKey).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ai settings: %w", err)
	}

	var settings domain.AISettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ai settings: %w", err)
	}
	return &settings, nil
}

// SaveAISettings persists AI settings
func (s *SettingsStore) SaveAISettings(ctx context.Context, settings *domain.AISettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal ai settings: %w", err)
	}
	if err := s.client.Set(ctx, aiSettingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save ai settings: %w", err)
	}
	return nil
}

// GetReaderSettings retrieves stored reader settings
func (s *SettingsStore) GetReaderSettings(ctx context.Context) (*domain.ReaderSettings, error) {
	data, err := s.client.Get(ctx, readerSettingsKey).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reader settings: %w", err)
	}

	var settings domain.ReaderSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reader settings: %w", err)
	}
	return &settings, nil
}

// SaveReaderSettings persists reader settings
func (s *SettingsStore) SaveReaderSettings(ctx context.Context, settings *domain.ReaderSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal reader settings: %w", err)
	}
	if err := s.client.Set(ctx, readerSettingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save reader settings: %w", err)
	}
	return nil
}
