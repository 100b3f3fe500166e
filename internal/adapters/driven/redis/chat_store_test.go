package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

func TestChatStoreHistoryRoundTrip(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewChatStore(client)
	ctx := context.Background()

	msgs := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "question", Timestamp: 1, BookID: "book-1"},
		{Role: domain.RoleAssistant, Content: "answer", Timestamp: 2, BookID: "book-1"},
	}
	if err := store.SaveHistory(ctx, "book-1", msgs); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.History(ctx, "book-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[1].Content != "answer" {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestChatStoreEmptyHistory(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewChatStore(client)

	got, err := store.History(context.Background(), "no-chat")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history, got %v", got)
	}
}

func TestChatStorePinnedAcrossBooks(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewChatStore(client)
	ctx := context.Background()

	pinned := []domain.ChatMessage{
		{Role: domain.RoleAssistant, Content: "from book one", Timestamp: 1, BookID: "book-1"},
		{Role: domain.RoleAssistant, Content: "from book two", Timestamp: 2, BookID: "book-2"},
	}
	if err := store.SavePinned(ctx, pinned); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Pinned(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0].BookID != "book-1" || got[1].BookID != "book-2" {
		t.Errorf("pinned messages should keep their book ids: %+v", got)
	}
}

func TestSummaryStorePerChapter(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSummaryStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "book-1", "ch01.xhtml", "summary one"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "book-1", "ch02.xhtml", "summary two"); err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err := store.GetAll(ctx, "book-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(all) != 2 || all["ch01.xhtml"] != "summary one" {
		t.Errorf("unexpected summaries %v", all)
	}

	if err := store.Delete(ctx, "book-1", "ch01.xhtml"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ = store.GetAll(ctx, "book-1")
	if _, ok := all["ch01.xhtml"]; ok {
		t.Error("deleted summary should be gone")
	}
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSettingsStore(client)
	ctx := context.Background()

	if _, err := store.GetAISettings(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unsaved ai settings should return ErrNotFound, got %v", err)
	}

	ai := &domain.AISettings{BaseURL: "http://localhost:11434", APIKey: "sk-x", Model: "qwen2.5"}
	if err := store.SaveAISettings(ctx, ai); err != nil {
		t.Fatalf("save ai: %v", err)
	}
	gotAI, err := store.GetAISettings(ctx)
	if err != nil {
		t.Fatalf("get ai: %v", err)
	}
	if *gotAI != *ai {
		t.Errorf("ai settings round trip lost data: %+v", gotAI)
	}

	reader := &domain.ReaderSettings{SummaryPrompt: "p", MinContentLength: 99, Theme: domain.ThemeDark}
	if err := store.SaveReaderSettings(ctx, reader); err != nil {
		t.Fatalf("save reader: %v", err)
	}
	gotReader, err := store.GetReaderSettings(ctx)
	if err != nil {
		t.Fatalf("get reader: %v", err)
	}
	if *gotReader != *reader {
		t.Errorf("reader settings round trip lost data: %+v", gotReader)
	}
}
