package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Ensure annotationService implements AnnotationService
var _ driving.AnnotationService = (*annotationService)(nil)

// annotationService implements the AnnotationService interface. The working
// set lives in memory while a book is open; every mutation persists the full
// set before overlays are reconciled, so a reconcile failure never loses data.
type annotationService struct {
	mu         sync.RWMutex
	store      driven.AnnotationStore
	reconciler driving.Reconciler

	bookID     string
	highlights map[int64]domain.Highlight
	lastID     int64
}

// NewAnnotationService creates a new AnnotationService. The reconciler is
// bound separately via BindReconciler because it is built after this service.
func NewAnnotationService(store driven.AnnotationStore) driving.AnnotationService {
	return &annotationService{
		store:      store,
		highlights: make(map[int64]domain.Highlight),
	}
}

// BindReconciler attaches the overlay reconciler. Must be called before the
// first book opens.
func (s *annotationService) BindReconciler(r driving.Reconciler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconciler = r
}

func (s *annotationService) Load(ctx context.Context, bookID string) error {
	stored, err := s.store.LoadAll(ctx, bookID)
	if err != nil {
		return fmt.Errorf("loading highlights for %s: %w", bookID, err)
	}

	s.mu.Lock()
	s.bookID = bookID
	s.highlights = make(map[int64]domain.Highlight, len(stored))
	s.lastID = 0
	for _, h := range stored {
		s.highlights[h.ID] = h
		if h.ID > s.lastID {
			s.lastID = h.ID
		}
	}
	r := s.reconciler
	s.mu.Unlock()

	if r != nil {
		for i := range stored {
			r.Reconcile(&stored[i])
		}
	}
	return nil
}

func (s *annotationService) List() []domain.Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Highlight, 0, len(s.highlights))
	for _, h := range s.highlights {
		out = append(out, h)
	}
	domain.SortHighlights(out)
	return out
}

// nextID returns a creation-time ID, bumping past the last issued ID when
// two highlights land in the same millisecond. Caller holds the lock.
func (s *annotationService) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *annotationService) Create(ctx context.Context, h domain.Highlight) (*domain.Highlight, error) {
	s.mu.Lock()
	if h.BookID == "" {
		h.BookID = s.bookID
	}
	if err := h.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	h.ID = s.nextID()
	s.highlights[h.ID] = h
	snapshot := s.snapshotLocked()
	bookID := s.bookID
	r := s.reconciler
	s.mu.Unlock()

	if err := s.store.SaveAll(ctx, bookID, snapshot); err != nil {
		s.mu.Lock()
		delete(s.highlights, h.ID)
		s.mu.Unlock()
		return nil, fmt.Errorf("saving highlights for %s: %w", bookID, err)
	}
	if r != nil {
		r.Reconcile(&h)
	}
	return &h, nil
}

func (s *annotationService) Update(ctx context.Context, id int64, patch domain.HighlightPatch) (*domain.Highlight, error) {
	s.mu.Lock()
	h, ok := s.highlights[id]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	prev := h
	if patch.ColorIndex != nil {
		h.ColorIndex = *patch.ColorIndex
	}
	if patch.Comment != nil {
		h.Comment = *patch.Comment
	}
	if err := h.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.highlights[id] = h
	snapshot := s.snapshotLocked()
	bookID := s.bookID
	r := s.reconciler
	s.mu.Unlock()

	if err := s.store.SaveAll(ctx, bookID, snapshot); err != nil {
		s.mu.Lock()
		s.highlights[id] = prev
		s.mu.Unlock()
		return nil, fmt.Errorf("saving highlights for %s: %w", bookID, err)
	}
	if r != nil {
		r.Reconcile(&h)
	}
	return &h, nil
}

func (s *annotationService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	h, ok := s.highlights[id]
	if !ok {
		// Deleting an unknown id is a no-op, the set already agrees.
		s.mu.Unlock()
		return nil
	}
	delete(s.highlights, id)
	snapshot := s.snapshotLocked()
	bookID := s.bookID
	r := s.reconciler
	s.mu.Unlock()

	if err := s.store.SaveAll(ctx, bookID, snapshot); err != nil {
		s.mu.Lock()
		s.highlights[id] = h
		s.mu.Unlock()
		return fmt.Errorf("saving highlights for %s: %w", bookID, err)
	}
	if r != nil {
		r.ClearOverlay(h.Locator)
	}
	return nil
}

func (s *annotationService) Get(id int64) (*domain.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.highlights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (s *annotationService) FindByLocator(locator domain.Locator) (*domain.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.highlights {
		if h.Locator == locator {
			return &h, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *annotationService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookID = ""
	s.highlights = make(map[int64]domain.Highlight)
	s.lastID = 0
}

// snapshotLocked returns the working set in creation order. Caller holds the
// lock.
func (s *annotationService) snapshotLocked() []domain.Highlight {
	out := make([]domain.Highlight, 0, len(s.highlights))
	for _, h := range s.highlights {
		out = append(out, h)
	}
	domain.SortHighlights(out)
	return out
}
