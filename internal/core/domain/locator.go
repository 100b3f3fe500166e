package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Locator canonically addresses a contiguous span of content within one
// structural section of a loaded document. Canonical form:
//
//	span(<sectionRef>!<start>-<end>)
//
// where start and end are rune offsets into the section's extracted plain
// text, 0 <= start < end. Locators are comparable as strings and carry no
// meaning across documents.
type Locator string

const (
	locatorPrefix = "span("
	locatorSuffix = ")"
)

// Span is the decomposed form of a Locator.
type Span struct {
	SectionRef string
	Start      int
	End        int
}

// Locator returns the canonical string form of the span.
func (sp Span) Locator() Locator {
	return Locator(fmt.Sprintf("span(%s!%d-%d)", sp.SectionRef, sp.Start, sp.End))
}

// ParseLocator decomposes a locator into its span. Malformed locators return
// ErrUnresolvableRange so callers can treat them as stale data.
func ParseLocator(l Locator) (Span, error) {
	s := string(l)
	if !strings.HasPrefix(s, locatorPrefix) || !strings.HasSuffix(s, locatorSuffix) {
		return Span{}, fmt.Errorf("locator %q: %w", l, ErrUnresolvableRange)
	}
	body := s[len(locatorPrefix) : len(s)-len(locatorSuffix)]

	// The section ref may itself contain "!" in pathological packages, so
	// split on the last separator.
	sep := strings.LastIndex(body, "!")
	if sep <= 0 {
		return Span{}, fmt.Errorf("locator %q: %w", l, ErrUnresolvableRange)
	}

	ref := body[:sep]
	var start, end int
	var err error
	offsets := body[sep+1:]
	dash := strings.IndexByte(offsets, '-')
	if dash < 0 {
		return Span{}, fmt.Errorf("locator %q: %w", l, ErrUnresolvableRange)
	}
	if start, err = strconv.Atoi(offsets[:dash]); err != nil {
		return Span{}, fmt.Errorf("locator %q: %w", l, ErrUnresolvableRange)
	}
	if end, err = strconv.Atoi(offsets[dash+1:]); err != nil {
		return Span{}, fmt.Errorf("locator %q: %w", l, ErrUnresolvableRange)
	}
	if start < 0 || end <= start {
		return Span{}, fmt.Errorf("locator %q: %w", l, ErrUnresolvableRange)
	}

	return Span{SectionRef: ref, Start: start, End: end}, nil
}

// BelongsToSection reports whether the locator addresses a span inside the
// given section. Malformed locators belong to no section.
func (l Locator) BelongsToSection(sectionRef string) bool {
	sp, err := ParseLocator(l)
	if err != nil {
		return false
	}
	return sp.SectionRef == sectionRef
}

// IsValid reports whether the locator is well-formed.
func (l Locator) IsValid() bool {
	_, err := ParseLocator(l)
	return err == nil
}

// Selection is a live text selection reported by the renderer. Offsets are
// rune offsets into the anchor section's extracted plain text.
type Selection struct {
	AnchorSection string
	FocusSection  string
	Start         int
	End           int
	Text          string
}

// Collapsed reports whether the selection contains no selectable text.
func (s Selection) Collapsed() bool {
	return s.End <= s.Start || strings.TrimSpace(s.Text) == ""
}
