package domain

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// PaletteSize is the number of highlight colors available.
	PaletteSize = 5

	// MaxCommentLength caps annotation comments, in runes.
	MaxCommentLength = 300
)

// HighlightPalette holds the CSS colors for each ColorIndex.
var HighlightPalette = [PaletteSize]string{
	"#ffe066",
	"#b2f2ff",
	"#ffd6e0",
	"#d3f9d8",
	"#ffd8a8",
}

// Highlight is a persisted annotation over a span of book content.
type Highlight struct {
	ID         int64   `json:"id"`
	Locator    Locator `json:"locator"`
	Text       string  `json:"text"`
	ColorIndex int     `json:"colorIndex"`
	Comment    string  `json:"comment,omitempty"`
	BookID     string  `json:"bookId"`
}

// Validate checks field constraints before a highlight is stored.
func (h *Highlight) Validate() error {
	if h.BookID == "" {
		return fmt.Errorf("highlight book id is empty: %w", ErrInvalidInput)
	}
	if !h.Locator.IsValid() {
		return fmt.Errorf("highlight locator %q is malformed: %w", h.Locator, ErrInvalidInput)
	}
	if strings.TrimSpace(h.Text) == "" {
		return fmt.Errorf("highlight text is empty: %w", ErrInvalidInput)
	}
	if h.ColorIndex < 0 || h.ColorIndex >= PaletteSize {
		return fmt.Errorf("highlight color index %d out of range: %w", h.ColorIndex, ErrInvalidInput)
	}
	if utf8.RuneCountInString(h.Comment) > MaxCommentLength {
		return fmt.Errorf("highlight comment exceeds %d characters: %w", MaxCommentLength, ErrInvalidInput)
	}
	return nil
}

// Color returns the palette color for the highlight.
func (h *Highlight) Color() string {
	if h.ColorIndex < 0 || h.ColorIndex >= PaletteSize {
		return HighlightPalette[0]
	}
	return HighlightPalette[h.ColorIndex]
}

// HighlightPatch carries the mutable fields of an annotation update. Nil
// fields are left untouched.
type HighlightPatch struct {
	ColorIndex *int    `json:"colorIndex,omitempty"`
	Comment    *string `json:"comment,omitempty"`
}

// SortHighlights orders highlights by creation time, oldest first. IDs are
// creation timestamps so this is a stable reading-order-independent order.
func SortHighlights(hs []Highlight) {
	sort.Slice(hs, func(i, j int) bool { return hs[i].ID < hs[j].ID })
}
