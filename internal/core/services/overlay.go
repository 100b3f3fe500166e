package services

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

const (
	// PopupWidth and PopupHeight are the pixel dimensions of the
	// floating menu and popup used for viewport clamping.
	PopupWidth  = 300
	PopupHeight = 200
)

// Ensure overlayService implements OverlayService
var _ driving.OverlayService = (*overlayService)(nil)

// overlayService implements the OverlayService interface. It owns the
// floating UI state and keeps drawn overlays consistent with the highlight
// set across section repaints.
type overlayService struct {
	mu          sync.Mutex
	renderer    driven.Renderer
	codec       driven.LocatorCodec
	annotations driving.AnnotationService
	logger      *slog.Logger

	state driving.OverlayState
}

// NewOverlayService creates a new OverlayService
func NewOverlayService(renderer driven.Renderer, annotations driving.AnnotationService, logger *slog.Logger) driving.OverlayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &overlayService{
		renderer:    renderer,
		annotations: annotations,
		logger:      logger,
		state:       driving.OverlayState{ActiveTab: driving.TabContents},
	}
}

func (s *overlayService) SetCodec(codec driven.LocatorCodec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codec = codec
}

func (s *overlayService) Reconcile(h *domain.Highlight) {
	if err := s.renderer.DrawOverlay(h.Locator, h.Color(), s.overlayClicked); err != nil {
		// The highlight is already persisted; the overlay will be
		// redrawn on the next section paint.
		s.logger.Warn("overlay draw failed", "locator", h.Locator, "error", err)
	}
}

func (s *overlayService) ClearOverlay(locator domain.Locator) {
	if err := s.renderer.RemoveOverlay(locator); err != nil {
		s.logger.Warn("overlay remove failed", "locator", locator, "error", err)
	}
	s.mu.Lock()
	if s.state.Popup != nil {
		s.state.Popup = nil
	}
	s.mu.Unlock()
}

func (s *overlayService) HandleSectionPainted(sectionRef string) {
	s.mu.Lock()
	codec := s.codec
	s.state.Menu = nil
	s.state.Popup = nil
	s.mu.Unlock()

	// A fresh paint starts from bare content, so every overlay belonging
	// to the section is redrawn from the working set.
	for _, h := range s.annotations.List() {
		belongs := h.Locator.BelongsToSection(sectionRef)
		if codec != nil {
			belongs = codec.BelongsToSection(h.Locator, sectionRef)
		}
		if !belongs {
			continue
		}
		hl := h
		s.Reconcile(&hl)
	}
}

func (s *overlayService) HandleSelection(sel domain.Selection, at domain.Point) error {
	s.mu.Lock()
	codec := s.codec
	s.mu.Unlock()
	if codec == nil {
		return domain.ErrNotConfigured
	}

	locator, err := codec.EncodeSelection(sel)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSelection), errors.Is(err, domain.ErrUnresolvableRange):
			// Collapsed or stale selections are ignored silently.
			return nil
		case errors.Is(err, domain.ErrCrossSection):
			return err
		default:
			return err
		}
	}

	pos := domain.ClampToViewport(at, PopupWidth, PopupHeight, s.renderer.Viewport())
	s.mu.Lock()
	s.state.Popup = nil
	s.state.Menu = &driving.SelectionMenu{
		Locator:  locator,
		Text:     sel.Text,
		Position: pos,
	}
	s.mu.Unlock()
	return nil
}

func (s *overlayService) HandleOverlayClick(locator domain.Locator, at domain.Point) {
	h, err := s.annotations.FindByLocator(locator)
	if err != nil {
		// Overlay with no backing highlight, typically mid-delete.
		s.logger.Debug("overlay click without highlight", "locator", locator)
		s.Dismiss()
		return
	}

	pos := domain.ClampToViewport(at, PopupWidth, PopupHeight, s.renderer.Viewport())
	s.mu.Lock()
	s.state.Menu = nil
	s.state.Popup = &driving.HighlightPopup{HighlightID: h.ID, Position: pos}
	s.state.FocusedID = h.ID
	// A click on an overlay also brings the highlights panel forward.
	s.state.ActiveTab = driving.TabHighlights
	s.mu.Unlock()
}

func (s *overlayService) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Menu = nil
	s.state.Popup = nil
}

func (s *overlayService) SetActiveTab(tab driving.PanelTab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveTab = tab
}

func (s *overlayService) FocusHighlight(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FocusedID = id
}

func (s *overlayService) State() driving.OverlayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if s.state.Menu != nil {
		menu := *s.state.Menu
		st.Menu = &menu
	}
	if s.state.Popup != nil {
		popup := *s.state.Popup
		st.Popup = &popup
	}
	return st
}

// overlayClicked is the click handler attached to every drawn overlay. The
// click position is the renderer's reported pointer location; a renderer that
// does not report one gets a centered popup.
func (s *overlayService) overlayClicked(locator domain.Locator) {
	vp := s.renderer.Viewport()
	at := domain.Point{X: vp.Width / 2, Y: vp.Height / 2}
	s.HandleOverlayClick(locator, at)
}
