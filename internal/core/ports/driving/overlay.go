package driving

import (
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// PanelTab identifies which side panel tab is active.
type PanelTab string

const (
	TabContents   PanelTab = "contents"
	TabHighlights PanelTab = "highlights"
	TabSummary    PanelTab = "summary"
	TabChat       PanelTab = "chat"
)

// SelectionMenu is the floating color menu shown over a fresh selection.
type SelectionMenu struct {
	Locator  domain.Locator `json:"locator"`
	Text     string         `json:"text"`
	Position domain.Point   `json:"position"`
}

// HighlightPopup is the floating detail popup shown for a clicked highlight.
type HighlightPopup struct {
	HighlightID int64        `json:"highlightId"`
	Position    domain.Point `json:"position"`
}

// OverlayState is the current floating UI state. At most one of Menu and
// Popup is non-nil.
type OverlayState struct {
	Menu      *SelectionMenu  `json:"menu,omitempty"`
	Popup     *HighlightPopup `json:"popup,omitempty"`
	ActiveTab PanelTab        `json:"activeTab"`
	FocusedID int64           `json:"focusedId,omitempty"`
}

// OverlayService keeps rendered overlays and floating UI in step with the
// highlight set and the renderer's paint cycle.
type OverlayService interface {
	Reconciler

	// SetCodec binds the locator codec for the currently open book
	SetCodec(codec driven.LocatorCodec)

	// HandleSectionPainted redraws every overlay belonging to the
	// painted section and dismisses floating UI
	HandleSectionPainted(sectionRef string)

	// HandleSelection reacts to a completed text selection, opening the
	// color menu when the selection encodes. Collapsed and stale
	// selections are ignored; cross-section selections return
	// ErrCrossSection.
	HandleSelection(sel domain.Selection, at domain.Point) error

	// HandleOverlayClick opens the highlight popup for a clicked
	// overlay, or dismisses floating UI when the locator matches no
	// highlight
	HandleOverlayClick(locator domain.Locator, at domain.Point)

	// Dismiss closes any open menu or popup
	Dismiss()

	// SetActiveTab switches the side panel tab
	SetActiveTab(tab PanelTab)

	// FocusHighlight records which highlight the panel has focused
	FocusHighlight(id int64)

	// State returns a snapshot of the floating UI state
	State() OverlayState
}
