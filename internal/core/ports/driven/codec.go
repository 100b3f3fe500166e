package driven

import (
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// LocatorCodec converts live selections into durable locators and resolves
// locators against document content. A codec is bound to one open document.
type LocatorCodec interface {
	// EncodeSelection converts a selection into a locator. Returns
	// ErrNoSelection for collapsed selections and ErrCrossSection when
	// the selection spans more than one section.
	EncodeSelection(sel domain.Selection) (domain.Locator, error)

	// Resolve checks a locator against the document and returns its span.
	// Locators pointing outside the section's text return
	// ErrUnresolvableRange.
	Resolve(locator domain.Locator) (domain.Span, error)

	// BelongsToSection reports whether the locator falls inside the
	// given section. Malformed locators belong to no section.
	BelongsToSection(locator domain.Locator, sectionRef string) bool
}
