package epubdoc

import (
	"unicode/utf8"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LocatorCodec = (*Codec)(nil)

// Codec encodes selections into span locators and resolves them against one
// open document's extracted text.
type Codec struct {
	doc driven.Document
}

// NewCodec creates a codec bound to doc
func NewCodec(doc driven.Document) *Codec {
	return &Codec{doc: doc}
}

// EncodeSelection converts a selection into a locator
func (c *Codec) EncodeSelection(sel domain.Selection) (domain.Locator, error) {
	if sel.Collapsed() {
		return "", domain.ErrNoSelection
	}
	if sel.AnchorSection != sel.FocusSection {
		return "", domain.ErrCrossSection
	}

	sp := domain.Span{SectionRef: sel.AnchorSection, Start: sel.Start, End: sel.End}
	if err := c.checkBounds(sp); err != nil {
		return "", err
	}
	return sp.Locator(), nil
}

// Resolve checks a locator against the document and returns its span
func (c *Codec) Resolve(locator domain.Locator) (domain.Span, error) {
	sp, err := domain.ParseLocator(locator)
	if err != nil {
		return domain.Span{}, err
	}
	if err := c.checkBounds(sp); err != nil {
		return domain.Span{}, err
	}
	return sp, nil
}

// BelongsToSection reports whether the locator falls inside the section
func (c *Codec) BelongsToSection(locator domain.Locator, sectionRef string) bool {
	sp, err := c.Resolve(locator)
	if err != nil {
		return false
	}
	return sp.SectionRef == sectionRef
}

// checkBounds verifies the span lies within the section's extracted text.
func (c *Codec) checkBounds(sp domain.Span) error {
	text, err := c.doc.SectionText(sp.SectionRef)
	if err != nil {
		return domain.ErrUnresolvableRange
	}
	if sp.Start < 0 || sp.End > utf8.RuneCountInString(text) || sp.Start >= sp.End {
		return domain.ErrUnresolvableRange
	}
	return nil
}

// SpanText returns the text a locator addresses.
func (c *Codec) SpanText(locator domain.Locator) (string, error) {
	sp, err := c.Resolve(locator)
	if err != nil {
		return "", err
	}
	text, err := c.doc.SectionText(sp.SectionRef)
	if err != nil {
		return "", err
	}
	runes := []rune(text)
	return string(runes[sp.Start:sp.End]), nil
}
