package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
	"github.com/kelvinzhao/epuber-core/internal/runtime"
)

// Ensure summaryService implements SummaryService
var _ driving.SummaryService = (*summaryService)(nil)

// generation tracks one in-flight summary request. epoch distinguishes a
// generation from its successor for the same chapter, so a superseded
// result can be discarded even after its context is replaced.
type generation struct {
	cancel context.CancelFunc
	epoch  uint64
}

// summaryService implements the SummaryService interface
type summaryService struct {
	mu       sync.Mutex
	store    driven.SummaryStore
	settings driven.SettingsStore
	services *runtime.Services
	logger   *slog.Logger
	md       goldmark.Markdown

	bookID      string
	doc         driven.Document
	generations map[string]*generation
	epoch       uint64
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(store driven.SummaryStore, settings driven.SettingsStore, services *runtime.Services, logger *slog.Logger) driving.SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &summaryService{
		store:       store,
		settings:    settings,
		services:    services,
		logger:      logger,
		md:          goldmark.New(),
		generations: make(map[string]*generation),
	}
}

func (s *summaryService) SetDocument(bookID string, doc driven.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.generations {
		g.cancel()
	}
	s.generations = make(map[string]*generation)
	s.bookID = bookID
	s.doc = doc
}

func (s *summaryService) Summaries(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	bookID := s.bookID
	s.mu.Unlock()
	if bookID == "" {
		return nil, domain.ErrNotFound
	}
	return s.store.GetAll(ctx, bookID)
}

func (s *summaryService) Generate(ctx context.Context, sectionRef string) (string, error) {
	s.mu.Lock()
	bookID := s.bookID
	doc := s.doc
	s.mu.Unlock()
	if doc == nil {
		return "", domain.ErrNotFound
	}

	llm := s.services.LLMService()
	if llm == nil {
		return "", domain.ErrNotConfigured
	}

	text, err := doc.SectionText(sectionRef)
	if err != nil {
		return "", fmt.Errorf("reading section %s: %w", sectionRef, err)
	}

	prompt, minLen := s.promptConfig(ctx)
	if utf8.RuneCountInString(text) < minLen {
		return "", fmt.Errorf("section %s has fewer than %d characters: %w", sectionRef, minLen, domain.ErrContentTooShort)
	}

	// Register this generation, superseding any running one for the
	// same chapter.
	genCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if prev, ok := s.generations[sectionRef]; ok {
		prev.cancel()
	}
	s.epoch++
	gen := &generation{cancel: cancel, epoch: s.epoch}
	s.generations[sectionRef] = gen
	s.mu.Unlock()
	defer cancel()

	summary, err := llm.Complete(genCtx, prompt, text)

	s.mu.Lock()
	current, live := s.generations[sectionRef]
	superseded := !live || current.epoch != gen.epoch
	if !superseded {
		delete(s.generations, sectionRef)
	}
	s.mu.Unlock()

	if superseded {
		// A newer request owns this chapter now; this result is
		// discarded regardless of whether it succeeded.
		return "", domain.ErrCancelled
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrCancelled) {
			return "", domain.ErrCancelled
		}
		return "", fmt.Errorf("generating summary for %s: %w", sectionRef, err)
	}

	if err := s.store.Save(ctx, bookID, sectionRef, summary); err != nil {
		return "", fmt.Errorf("saving summary for %s: %w", sectionRef, err)
	}
	return summary, nil
}

func (s *summaryService) Cancel(sectionRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen, ok := s.generations[sectionRef]; ok {
		gen.cancel()
		delete(s.generations, sectionRef)
	}
}

func (s *summaryService) Generating(sectionRef string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.generations[sectionRef]
	return ok
}

func (s *summaryService) RenderHTML(summary string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(summary), &buf); err != nil {
		return "", fmt.Errorf("rendering summary: %w", err)
	}
	return buf.String(), nil
}

// promptConfig returns the configured summary prompt and minimum content
// length, falling back to defaults.
func (s *summaryService) promptConfig(ctx context.Context) (string, int) {
	rs, err := s.settings.GetReaderSettings(ctx)
	if err != nil {
		def := domain.DefaultReaderSettings()
		return def.SummaryPrompt, def.MinContentLength
	}
	rs.Normalize()
	return rs.SummaryPrompt, rs.MinContentLength
}
