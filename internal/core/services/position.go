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
)

// Ensure positionService implements PositionService
var _ driving.PositionService = (*positionService)(nil)

// positionService implements the PositionService interface. Restore is a two
// step cycle: navigate to the coarse section first, then apply the saved
// fine-grained locator exactly once on the first paint. Settled locations
// arriving during restore are dropped so they cannot clobber the saved
// position.
type positionService struct {
	mu       sync.Mutex
	renderer driven.Renderer
	progress driven.ProgressStore
	catalog  driven.CatalogStore
	logger   *slog.Logger

	state   driving.RestoreState
	bookID  string
	doc     driven.Document
	pending domain.Locator
}

// NewPositionService creates a new PositionService
func NewPositionService(renderer driven.Renderer, progress driven.ProgressStore, catalog driven.CatalogStore, logger *slog.Logger) driving.PositionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &positionService{
		renderer: renderer,
		progress: progress,
		catalog:  catalog,
		logger:   logger,
		state:    driving.RestoreUninitialized,
	}
}

func (s *positionService) Restore(ctx context.Context, bookID string, doc driven.Document) error {
	spine := doc.Spine()
	if len(spine) == 0 {
		return fmt.Errorf("book %s has an empty spine: %w", bookID, domain.ErrInvalidInput)
	}

	target := openingSection(doc)
	var pending domain.Locator

	pos, err := s.progress.Get(ctx, bookID)
	switch {
	case err == nil && !pos.IsZero():
		if _, idxErr := doc.SectionIndex(pos.SectionRef); idxErr == nil {
			target = pos.SectionRef
			pending = pos.Locator
		} else {
			// The saved section no longer exists, fall back to the
			// opening section.
			s.logger.Warn("saved position section missing", "book", bookID, "section", pos.SectionRef)
		}
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("loading position for %s: %w", bookID, err)
	}

	s.mu.Lock()
	s.state = driving.RestoreRestoring
	s.bookID = bookID
	s.doc = doc
	s.pending = pending
	s.mu.Unlock()

	if err := s.renderer.Display(ctx, target); err != nil {
		s.mu.Lock()
		s.state = driving.RestoreUninitialized
		s.mu.Unlock()
		return fmt.Errorf("displaying %s: %w", target, err)
	}
	return nil
}

// openingSection picks where a book opens when nothing is saved yet. The
// first table-of-contents entry usually skips cover and front matter, so it
// wins over the raw spine start when it resolves to a real section.
func openingSection(doc driven.Document) string {
	for _, entry := range doc.TOC() {
		if _, err := doc.SectionIndex(entry.SectionRef); err == nil {
			return entry.SectionRef
		}
	}
	return doc.Spine()[0].Ref
}

func (s *positionService) HandleSectionPainted(ctx context.Context, sectionRef string) {
	s.mu.Lock()
	if s.state != driving.RestoreRestoring {
		s.mu.Unlock()
		return
	}
	pending := s.pending
	s.pending = ""
	if pending == "" || !pending.BelongsToSection(sectionRef) {
		// Nothing finer to apply, the coarse position stands.
		s.state = driving.RestoreStable
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Navigate to the exact saved span. The paint this triggers finds no
	// pending locator, which completes the cycle.
	if err := s.renderer.Display(ctx, string(pending)); err != nil {
		s.logger.Warn("fine position restore failed", "locator", pending, "error", err)
	}
	s.mu.Lock()
	s.state = driving.RestoreStable
	s.mu.Unlock()
}

func (s *positionService) HandleLocationSettled(ctx context.Context, sectionRef string, locator domain.Locator) {
	s.mu.Lock()
	if s.state != driving.RestoreStable {
		s.mu.Unlock()
		return
	}
	bookID := s.bookID
	doc := s.doc
	s.mu.Unlock()

	pos := &domain.Position{SectionRef: sectionRef, Locator: locator}
	if err := s.progress.Save(ctx, bookID, pos); err != nil {
		s.logger.Warn("position save failed", "book", bookID, "error", err)
		return
	}

	idx, err := doc.SectionIndex(sectionRef)
	if err != nil {
		s.logger.Warn("settled section not in spine", "book", bookID, "section", sectionRef)
		return
	}
	s.writeBackProgress(ctx, bookID, domain.FormatProgress(idx, len(doc.Spine())))
}

// writeBackProgress updates the catalog record's progress and last-read
// timestamp. Catalog failures are logged, not surfaced, because the position
// itself is already saved.
func (s *positionService) writeBackProgress(ctx context.Context, bookID, progress string) {
	book, err := s.catalog.Get(ctx, bookID)
	if err != nil {
		s.logger.Warn("catalog lookup failed", "book", bookID, "error", err)
		return
	}
	book.Progress = progress
	book.LastReadAt = time.Now().UnixMilli()
	if err := s.catalog.Save(ctx, book); err != nil {
		s.logger.Warn("catalog progress write failed", "book", bookID, "error", err)
	}
}

func (s *positionService) State() driving.RestoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *positionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = driving.RestoreUninitialized
	s.bookID = ""
	s.doc = nil
	s.pending = ""
}
