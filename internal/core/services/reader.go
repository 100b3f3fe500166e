package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Ensure readerService implements ReaderService
var _ driving.ReaderService = (*readerService)(nil)

// CodecFactory builds a locator codec bound to an open document.
type CodecFactory func(doc driven.Document) driven.LocatorCodec

// readerService implements the ReaderService interface. It owns the book
// open/close lifecycle and fans renderer events out to the services that
// react to them.
type readerService struct {
	mu sync.Mutex

	catalog     driven.CatalogStore
	loader      driven.DocumentLoader
	renderer    driven.Renderer
	codecFor    CodecFactory
	annotations driving.AnnotationService
	overlay     driving.OverlayService
	position    driving.PositionService
	session     driving.SessionService
	theme       driving.ThemeService
	summary     driving.SummaryService
	chat        driving.ChatService
	logger      *slog.Logger

	open *driving.OpenBook
}

// ReaderDeps bundles the collaborators of the reader lifecycle.
type ReaderDeps struct {
	Catalog     driven.CatalogStore
	Loader      driven.DocumentLoader
	Renderer    driven.Renderer
	CodecFor    CodecFactory
	Annotations driving.AnnotationService
	Overlay     driving.OverlayService
	Position    driving.PositionService
	Session     driving.SessionService
	Theme       driving.ThemeService
	Summary     driving.SummaryService
	Chat        driving.ChatService
	Logger      *slog.Logger
}

// NewReaderService creates a new ReaderService and subscribes it to the
// renderer's paint and settle events.
func NewReaderService(deps ReaderDeps) driving.ReaderService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &readerService{
		catalog:     deps.Catalog,
		loader:      deps.Loader,
		renderer:    deps.Renderer,
		codecFor:    deps.CodecFor,
		annotations: deps.Annotations,
		overlay:     deps.Overlay,
		position:    deps.Position,
		session:     deps.Session,
		theme:       deps.Theme,
		summary:     deps.Summary,
		chat:        deps.Chat,
		logger:      logger,
	}

	// Event fan-out. Order matters on paint: overlays and theme are
	// reapplied before the position cycle advances, so a restore jump
	// repaints an already-styled section.
	deps.Renderer.OnSectionPainted(func(sectionRef string) {
		s.overlay.HandleSectionPainted(sectionRef)
		s.theme.HandleSectionPainted(sectionRef)
		s.position.HandleSectionPainted(context.Background(), sectionRef)
	})
	deps.Renderer.OnLocationSettled(func(sectionRef string, locator domain.Locator) {
		s.position.HandleLocationSettled(context.Background(), sectionRef, locator)
	})

	return s
}

func (s *readerService) Open(ctx context.Context, bookID string) (*driving.OpenBook, error) {
	// An already open book is flushed and torn down first.
	if err := s.Close(ctx); err != nil {
		s.logger.Warn("closing previous book failed", "error", err)
	}

	book, err := s.catalog.Get(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("looking up book %s: %w", bookID, err)
	}

	doc, err := s.loader.Open(book.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", book.Path, err)
	}

	s.overlay.SetCodec(s.codecFor(doc))
	s.summary.SetDocument(bookID, doc)
	s.chat.SetBook(bookID, doc.Title(), doc.Author())

	if err := s.annotations.Load(ctx, bookID); err != nil {
		return nil, err
	}
	if err := s.position.Restore(ctx, bookID, doc); err != nil {
		return nil, err
	}

	// The theme sheet is installed immediately; paints keep it fresh.
	s.theme.HandleSectionPainted("")
	s.session.Start()

	open := &driving.OpenBook{BookID: bookID, Doc: doc}
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()

	s.logger.Info("book opened", "book", bookID, "title", doc.Title())
	return open, nil
}

func (s *readerService) Close(ctx context.Context) error {
	s.mu.Lock()
	open := s.open
	s.open = nil
	s.mu.Unlock()
	if open == nil {
		return nil
	}

	// Flush the session before tearing state down so reading time is
	// never lost to a failed teardown.
	flushErr := s.session.Flush(ctx)

	s.position.Reset()
	s.annotations.Clear()
	s.overlay.Dismiss()

	if flushErr != nil {
		return fmt.Errorf("flushing session for %s: %w", open.BookID, flushErr)
	}
	s.logger.Info("book closed", "book", open.BookID)
	return nil
}

func (s *readerService) Current() (*driving.OpenBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		return nil, domain.ErrNotFound
	}
	return s.open, nil
}

func (s *readerService) Display(ctx context.Context, target string) error {
	s.mu.Lock()
	open := s.open
	s.mu.Unlock()
	if open == nil {
		return domain.ErrNotFound
	}
	return s.renderer.Display(ctx, target)
}
