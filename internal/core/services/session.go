package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Ensure sessionService implements SessionService
var _ driving.SessionService = (*sessionService)(nil)

// sessionService implements the SessionService interface. A zero startedAt
// means no session is open. The clock is injectable for tests.
type sessionService struct {
	mu     sync.Mutex
	store  driven.ReadingStatsStore
	logger *slog.Logger
	now    func() time.Time

	startedAt time.Time
	pending   *pendingFlush
}

// pendingFlush is an interval that was measured but not yet persisted.
// The daily map already has the minutes applied, so retrying SaveDaily
// replaces the same snapshot and cannot double-count. The total is
// re-read from the store on every attempt.
type pendingFlush struct {
	daily   domain.DailyMinutes
	minutes int
	date    string
}

// NewSessionService creates a new SessionService
func NewSessionService(store driven.ReadingStatsStore, logger *slog.Logger) driving.SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startedAt = s.now()
}

func (s *sessionService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.startedAt.IsZero() {
		now := s.now()
		minutes := domain.SessionMinutes(now.Sub(s.startedAt))
		if minutes <= 0 {
			// Sub-minute sessions are discarded but still end the session.
			s.startedAt = time.Time{}
		} else {
			if s.pending == nil {
				daily, err := s.store.GetDaily(ctx)
				if err != nil {
					// The session stays open so a later flush can retry.
					return fmt.Errorf("loading daily minutes: %w", err)
				}
				if daily == nil {
					daily = make(domain.DailyMinutes)
				}
				s.pending = &pendingFlush{daily: daily}
			}
			s.pending.date = domain.DateKey(now)
			s.pending.daily[s.pending.date] += minutes
			domain.PruneDaily(s.pending.daily)
			s.pending.minutes += minutes
			s.startedAt = time.Time{}
		}
	}

	if s.pending == nil {
		return nil
	}

	if err := s.store.SaveDaily(ctx, s.pending.daily); err != nil {
		return fmt.Errorf("saving daily minutes: %w", err)
	}
	total, err := s.store.GetTotal(ctx)
	if err != nil {
		return fmt.Errorf("loading total minutes: %w", err)
	}
	if err := s.store.SaveTotal(ctx, total+s.pending.minutes); err != nil {
		return fmt.Errorf("saving total minutes: %w", err)
	}

	s.logger.Info("reading session flushed", "minutes", s.pending.minutes, "date", s.pending.date)
	s.pending = nil
	return nil
}

func (s *sessionService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.startedAt.IsZero() || s.pending != nil
}

func (s *sessionService) Stats(ctx context.Context) (*driving.ReadingStats, error) {
	daily, err := s.store.GetDaily(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading daily minutes: %w", err)
	}
	total, err := s.store.GetTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading total minutes: %w", err)
	}
	if daily == nil {
		daily = make(domain.DailyMinutes)
	}
	return &driving.ReadingStats{Daily: daily, TotalMinutes: total}, nil
}
