package driving

import (
	"context"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// RestoreState tracks the position restore lifecycle of an open book.
type RestoreState string

const (
	// RestoreUninitialized means no book is being tracked.
	RestoreUninitialized RestoreState = "uninitialized"

	// RestoreRestoring means the saved position is being reapplied;
	// settled-location events are not persisted in this state.
	RestoreRestoring RestoreState = "restoring"

	// RestoreStable means restore is done and settled locations are
	// persisted as they arrive.
	RestoreStable RestoreState = "stable"
)

// PositionService restores the saved reading position when a book opens and
// persists the position as the reader moves.
type PositionService interface {
	// Restore begins the restore cycle for a book, navigating to the
	// saved position or the spine start when none is saved
	Restore(ctx context.Context, bookID string, doc driven.Document) error

	// HandleSectionPainted advances the restore cycle. The first paint
	// after Restore applies the saved fine-grained locator, if any.
	HandleSectionPainted(ctx context.Context, sectionRef string)

	// HandleLocationSettled persists the settled position and writes
	// progress back to the catalog. Events during restore are dropped.
	HandleLocationSettled(ctx context.Context, sectionRef string, locator domain.Locator)

	// State returns the current restore state
	State() RestoreState

	// Reset abandons tracking, used when the book is closed
	Reset()
}
