package mocks

import (
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// MockLocatorCodec is a mock implementation of LocatorCodec for testing. It
// encodes selections into canonical span locators without consulting any
// document content.
type MockLocatorCodec struct {
	EncodeErr  error
	ResolveErr error
}

// NewMockLocatorCodec creates a new MockLocatorCodec
func NewMockLocatorCodec() *MockLocatorCodec {
	return &MockLocatorCodec{}
}

func (m *MockLocatorCodec) EncodeSelection(sel domain.Selection) (domain.Locator, error) {
	if m.EncodeErr != nil {
		return "", m.EncodeErr
	}
	if sel.Collapsed() {
		return "", domain.ErrNoSelection
	}
	if sel.AnchorSection != sel.FocusSection {
		return "", domain.ErrCrossSection
	}
	sp := domain.Span{SectionRef: sel.AnchorSection, Start: sel.Start, End: sel.End}
	return sp.Locator(), nil
}

func (m *MockLocatorCodec) Resolve(locator domain.Locator) (domain.Span, error) {
	if m.ResolveErr != nil {
		return domain.Span{}, m.ResolveErr
	}
	return domain.ParseLocator(locator)
}

func (m *MockLocatorCodec) BelongsToSection(locator domain.Locator, sectionRef string) bool {
	return locator.BelongsToSection(sectionRef)
}
