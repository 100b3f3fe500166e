package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Ensure libraryService implements LibraryService
var _ driving.LibraryService = (*libraryService)(nil)

// libraryService implements the LibraryService interface
type libraryService struct {
	catalog driven.CatalogStore
	stats   driven.ReadingStatsStore
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(catalog driven.CatalogStore, stats driven.ReadingStatsStore) driving.LibraryService {
	return &libraryService{catalog: catalog, stats: stats}
}

func (s *libraryService) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	// Most recently read first, then newest additions.
	sort.Slice(books, func(i, j int) bool {
		if books[i].LastReadAt != books[j].LastReadAt {
			return books[i].LastReadAt > books[j].LastReadAt
		}
		return books[i].AddedAt > books[j].AddedAt
	})
	return books, nil
}

func (s *libraryService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.catalog.Get(ctx, id)
}

func (s *libraryService) Add(ctx context.Context, book *domain.Book) error {
	if book.AddedAt == 0 {
		book.AddedAt = time.Now().UnixMilli()
	}
	if err := book.Validate(); err != nil {
		return err
	}
	return s.catalog.Save(ctx, book)
}

func (s *libraryService) Remove(ctx context.Context, id string) error {
	if _, err := s.catalog.Get(ctx, id); err != nil {
		return err
	}
	return s.catalog.Delete(ctx, id)
}

func (s *libraryService) Overview(ctx context.Context) (*driving.LibraryOverview, error) {
	books, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	total, err := s.stats.GetTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading total minutes: %w", err)
	}

	overview := &driving.LibraryOverview{
		TotalBooks:   len(books),
		TotalMinutes: total,
	}
	for _, b := range books {
		if b.Finished() {
			overview.FinishedBooks++
		}
		if b.LastReadAt > 0 && (overview.LastRead == nil || b.LastReadAt > overview.LastRead.LastReadAt) {
			overview.LastRead = b
		}
	}
	return overview, nil
}
