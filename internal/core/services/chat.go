package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
	"github.com/kelvinzhao/epuber-core/internal/runtime"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService implements the ChatService interface. At most one request is
// in flight; Send while another request runs returns ErrServiceUnavailable.
type chatService struct {
	mu       sync.Mutex
	store    driven.ChatStore
	services *runtime.Services
	logger   *slog.Logger
	now      func() time.Time

	bookID   string
	title    string
	author   string
	cancel   context.CancelFunc
	inFlight bool
}

// NewChatService creates a new ChatService
func NewChatService(store driven.ChatStore, services *runtime.Services, logger *slog.Logger) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		store:    store,
		services: services,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *chatService) SetBook(bookID, title, author string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
	s.bookID = bookID
	s.title = title
	s.author = author
}

func (s *chatService) History(ctx context.Context) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	bookID := s.bookID
	s.mu.Unlock()
	if bookID == "" {
		return nil, domain.ErrNotFound
	}
	return s.store.History(ctx, bookID)
}

func (s *chatService) Send(ctx context.Context, content string) (*domain.ChatMessage, error) {
	s.mu.Lock()
	if s.bookID == "" {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, fmt.Errorf("a chat request is already running: %w", domain.ErrServiceUnavailable)
	}
	bookID, title, author := s.bookID, s.title, s.author
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		cancel()
		s.mu.Lock()
		s.inFlight = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	llm := s.services.LLMService()
	if llm == nil {
		return nil, domain.ErrNotConfigured
	}

	history, err := s.store.History(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("loading chat history for %s: %w", bookID, err)
	}

	userMsg := domain.ChatMessage{
		Role:      domain.RoleUser,
		Content:   content,
		Timestamp: s.now().UnixMilli(),
		BookID:    bookID,
	}
	history = append(history, userMsg)
	if err := s.store.SaveHistory(ctx, bookID, history); err != nil {
		return nil, fmt.Errorf("saving chat history for %s: %w", bookID, err)
	}

	system := fmt.Sprintf(
		"You are a reading companion for the book %q by %s. Answer questions about the book in the language the user writes in.",
		title, authorOrUnknown(author),
	)

	reply, err := llm.Complete(reqCtx, system, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrCancelled) {
			// Record the cancellation in the transcript so the
			// conversation shows the gap.
			marker := domain.ChatMessage{
				Role:      domain.RoleAssistant,
				Content:   domain.CancelledMarker,
				Timestamp: s.now().UnixMilli(),
				BookID:    bookID,
			}
			history = append(history, marker)
			if saveErr := s.store.SaveHistory(context.WithoutCancel(ctx), bookID, history); saveErr != nil {
				s.logger.Warn("cancellation marker save failed", "book", bookID, "error", saveErr)
			}
			return nil, domain.ErrCancelled
		}
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	assistantMsg := domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: s.now().UnixMilli(),
		BookID:    bookID,
	}
	history = append(history, assistantMsg)
	if err := s.store.SaveHistory(ctx, bookID, history); err != nil {
		return nil, fmt.Errorf("saving chat history for %s: %w", bookID, err)
	}
	return &assistantMsg, nil
}

func (s *chatService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *chatService) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	bookID := s.bookID
	s.mu.Unlock()
	if bookID == "" {
		return domain.ErrNotFound
	}
	return s.store.SaveHistory(ctx, bookID, []domain.ChatMessage{})
}

func (s *chatService) Pin(ctx context.Context, msg domain.ChatMessage) error {
	if msg.BookID == "" {
		return fmt.Errorf("pinned message needs a book id: %w", domain.ErrInvalidInput)
	}
	pinned, err := s.store.Pinned(ctx)
	if err != nil {
		return fmt.Errorf("loading pinned messages: %w", err)
	}
	for _, p := range pinned {
		if p.BookID == msg.BookID && p.Timestamp == msg.Timestamp {
			return nil
		}
	}
	pinned = append(pinned, msg)
	return s.store.SavePinned(ctx, pinned)
}

func (s *chatService) Unpin(ctx context.Context, bookID string, timestamp int64) error {
	pinned, err := s.store.Pinned(ctx)
	if err != nil {
		return fmt.Errorf("loading pinned messages: %w", err)
	}
	kept := pinned[:0]
	for _, p := range pinned {
		if p.BookID == bookID && p.Timestamp == timestamp {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == len(pinned) {
		return domain.ErrNotFound
	}
	return s.store.SavePinned(ctx, kept)
}

func (s *chatService) Pinned(ctx context.Context) ([]domain.ChatMessage, error) {
	return s.store.Pinned(ctx)
}

func authorOrUnknown(author string) string {
	if author == "" {
		return "an unknown author"
	}
	return author
}
