package domain

import (
	"errors"
	"strings"
	"testing"
)

func validHighlight() Highlight {
	return Highlight{
		ID:         1700000000000,
		Locator:    "span(ch01.xhtml!10-42)",
		Text:       "a memorable passage",
		ColorIndex: 2,
		BookID:     "book-1",
	}
}

func TestHighlightValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Highlight)
		ok     bool
	}{
		{"valid", func(h *Highlight) {}, true},
		{"empty book id", func(h *Highlight) { h.BookID = "" }, false},
		{"malformed locator", func(h *Highlight) { h.Locator = "nope" }, false},
		{"empty text", func(h *Highlight) { h.Text = "  " }, false},
		{"color index too high", func(h *Highlight) { h.ColorIndex = PaletteSize }, false},
		{"negative color index", func(h *Highlight) { h.ColorIndex = -1 }, false},
		{"comment at limit", func(h *Highlight) { h.Comment = strings.Repeat("x", MaxCommentLength) }, true},
		{"comment over limit", func(h *Highlight) { h.Comment = strings.Repeat("x", MaxCommentLength+1) }, false},
		{"multibyte comment at limit", func(h *Highlight) { h.Comment = strings.Repeat("读", MaxCommentLength) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHighlight()
			tt.mutate(&h)
			err := h.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			}
		})
	}
}

func TestHighlightColor(t *testing.T) {
	h := validHighlight()
	if h.Color() != HighlightPalette[2] {
		t.Errorf("got %q, want %q", h.Color(), HighlightPalette[2])
	}
	h.ColorIndex = 99
	if h.Color() != HighlightPalette[0] {
		t.Error("out-of-range color index should fall back to first palette color")
	}
}

func TestSortHighlights(t *testing.T) {
	hs := []Highlight{{ID: 30}, {ID: 10}, {ID: 20}}
	SortHighlights(hs)
	for i, want := range []int64{10, 20, 30} {
		if hs[i].ID != want {
			t.Errorf("index %d: got %d, want %d", i, hs[i].ID, want)
		}
	}
}
