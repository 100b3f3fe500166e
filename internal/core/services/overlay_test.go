package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven/mocks"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

func newOverlayFixture(t *testing.T) (driving.OverlayService, driving.AnnotationService, *mocks.MockRenderer) {
	t.Helper()
	renderer := mocks.NewMockRenderer()
	store := mocks.NewMockAnnotationStore()
	ann := NewAnnotationService(store)
	svc := NewOverlayService(renderer, ann, nil)
	svc.SetCodec(mocks.NewMockLocatorCodec())
	ann.(*annotationService).BindReconciler(svc)
	if err := ann.Load(context.Background(), "book-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc, ann, renderer
}

func TestOverlaySelectionOpensMenu(t *testing.T) {
	svc, _, _ := newOverlayFixture(t)

	sel := domain.Selection{
		AnchorSection: "ch01.xhtml",
		FocusSection:  "ch01.xhtml",
		Start:         10,
		End:           42,
		Text:          "selected words",
	}
	if err := svc.HandleSelection(sel, domain.Point{X: 100, Y: 100}); err != nil {
		t.Fatalf("selection: %v", err)
	}

	st := svc.State()
	if st.Menu == nil {
		t.Fatal("selection should open the color menu")
	}
	if st.Menu.Locator != "span(ch01.xhtml!10-42)" {
		t.Errorf("menu locator = %q", st.Menu.Locator)
	}
	if st.Menu.Position != (domain.Point{X: 100, Y: 100}) {
		t.Errorf("in-bounds position should be untouched, got %+v", st.Menu.Position)
	}
}

func TestOverlaySelectionClampsMenu(t *testing.T) {
	svc, _, renderer := newOverlayFixture(t)
	renderer.SetViewport(domain.Viewport{Width: 1000, Height: 800})

	sel := domain.Selection{
		AnchorSection: "ch01.xhtml",
		FocusSection:  "ch01.xhtml",
		Start:         1,
		End:           2,
		Text:          "x",
	}
	if err := svc.HandleSelection(sel, domain.Point{X: 950, Y: 750}); err != nil {
		t.Fatalf("selection: %v", err)
	}
	st := svc.State()
	want := domain.Point{X: 1000 - PopupWidth, Y: 800 - PopupHeight}
	if st.Menu.Position != want {
		t.Errorf("menu should be clamped to %+v, got %+v", want, st.Menu.Position)
	}
}

func TestOverlayCollapsedSelectionIgnored(t *testing.T) {
	svc, _, _ := newOverlayFixture(t)

	sel := domain.Selection{AnchorSection: "ch01.xhtml", FocusSection: "ch01.xhtml", Start: 5, End: 5}
	if err := svc.HandleSelection(sel, domain.Point{}); err != nil {
		t.Fatalf("collapsed selection should be silent, got %v", err)
	}
	if svc.State().Menu != nil {
		t.Error("collapsed selection should not open a menu")
	}
}

func TestOverlayCrossSectionSelection(t *testing.T) {
	svc, _, _ := newOverlayFixture(t)

	sel := domain.Selection{
		AnchorSection: "ch01.xhtml",
		FocusSection:  "ch02.xhtml",
		Start:         1,
		End:           9,
		Text:          "spans two chapters",
	}
	err := svc.HandleSelection(sel, domain.Point{})
	if !errors.Is(err, domain.ErrCrossSection) {
		t.Errorf("expected ErrCrossSection, got %v", err)
	}
	if svc.State().Menu != nil {
		t.Error("cross-section selection should not open a menu")
	}
}

func TestOverlaySectionPaintedRedraws(t *testing.T) {
	svc, ann, renderer := newOverlayFixture(t)

	h1, _ := ann.Create(context.Background(), domain.Highlight{Locator: "span(ch01.xhtml!1-5)", Text: "a"})
	h2, _ := ann.Create(context.Background(), domain.Highlight{Locator: "span(ch02.xhtml!1-5)", Text: "b"})

	// Simulate the renderer dropping all overlays on a repaint.
	renderer.RemoveOverlay(h1.Locator)
	renderer.RemoveOverlay(h2.Locator)

	svc.HandleSectionPainted("ch01.xhtml")

	overlays := renderer.Overlays()
	if _, ok := overlays[h1.Locator]; !ok {
		t.Error("overlay in the painted section should be redrawn")
	}
	if _, ok := overlays[h2.Locator]; ok {
		t.Error("overlay in another section should not be redrawn")
	}
}

func TestOverlaySectionPaintedDismissesUI(t *testing.T) {
	svc, _, _ := newOverlayFixture(t)

	sel := domain.Selection{AnchorSection: "ch01.xhtml", FocusSection: "ch01.xhtml", Start: 1, End: 5, Text: "x"}
	if err := svc.HandleSelection(sel, domain.Point{X: 10, Y: 10}); err != nil {
		t.Fatalf("selection: %v", err)
	}
	svc.HandleSectionPainted("ch01.xhtml")
	st := svc.State()
	if st.Menu != nil || st.Popup != nil {
		t.Error("repaint should dismiss floating UI")
	}
}

func TestOverlayClickOpensPopup(t *testing.T) {
	svc, ann, _ := newOverlayFixture(t)
	h, _ := ann.Create(context.Background(), domain.Highlight{Locator: "span(ch01.xhtml!1-5)", Text: "a"})

	svc.HandleOverlayClick(h.Locator, domain.Point{X: 50, Y: 60})
	st := svc.State()
	if st.Popup == nil || st.Popup.HighlightID != h.ID {
		t.Fatalf("click should open the popup for the highlight, state %+v", st)
	}
	if st.FocusedID != h.ID {
		t.Error("click should focus the highlight")
	}
	if st.ActiveTab != driving.TabHighlights {
		t.Errorf("click should switch the panel to the highlights tab, got %q", st.ActiveTab)
	}
}

func TestOverlayClickUnknownLocatorDismisses(t *testing.T) {
	svc, _, _ := newOverlayFixture(t)

	sel := domain.Selection{AnchorSection: "ch01.xhtml", FocusSection: "ch01.xhtml", Start: 1, End: 5, Text: "x"}
	if err := svc.HandleSelection(sel, domain.Point{}); err != nil {
		t.Fatalf("selection: %v", err)
	}
	svc.HandleOverlayClick("span(ch09.xhtml!1-2)", domain.Point{})
	st := svc.State()
	if st.Menu != nil || st.Popup != nil {
		t.Error("a click matching no highlight should dismiss floating UI")
	}
}

func TestOverlayDrawnThroughRendererClick(t *testing.T) {
	svc, ann, renderer := newOverlayFixture(t)
	h, _ := ann.Create(context.Background(), domain.Highlight{Locator: "span(ch01.xhtml!1-5)", Text: "a"})

	if !renderer.ClickOverlay(h.Locator) {
		t.Fatal("drawn overlay should carry a click handler")
	}
	if st := svc.State(); st.Popup == nil || st.Popup.HighlightID != h.ID {
		t.Error("renderer click should route to the popup")
	}
}
