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
var _ driven.ChatStore = (*ChatStore)(nil)

const (
	chatHistoryPrefix = "chat:history:"
	chatPinnedKey     = "chat:pinned"
)

// ChatStore implements driven.ChatStore using Redis
type ChatStore struct {
	client *redis.Client
}

// NewChatStore creates a new Redis-backed ChatStore
func NewChatStore(client *redis.Client) *ChatStore {
	return &ChatStore{client: client}
}

// History retrieves a book's conversation, oldest first
func (s *ChatStore) History(ctx context.Context, bookID string) ([]domain.ChatMessage, error) {
	return s.getMessages(ctx, chatHistoryPrefix+bookID)
}

// SaveHistory replaces a book's conversation
func (s *ChatStore) SaveHistory(ctx context.Context, bookID string, msgs []domain.ChatMessage) error {
	return s.setMessages(ctx, chatHistoryPrefix+bookID, msgs)
}

// Pinned retrieves all pinned messages across books
func (s *ChatStore) Pinned(ctx context.Context) ([]domain.ChatMessage, error) {
	return s.getMessages(ctx, chatPinnedKey)
}

// SavePinned replaces the pinned collection
func (s *ChatStore) SavePinned(ctx context.Context, msgs []domain.ChatMessage) error {
	return s.setMessages(ctx, chatPinnedKey, msgs)
}

func (s *ChatStore) getMessages(ctx context.Context, key string) ([]domain.ChatMessage, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return []domain.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	var msgs []domain.ChatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return msgs, nil
}

func (s *ChatStore) setMessages(ctx context.Context, key string, msgs []domain.ChatMessage) error {
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save messages: %w", err)
	}
	return nil
}
