package mocks

import (
	"fmt"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// MockDocument is a fake open book backed by an in-memory section map.
type MockDocument struct {
	DocTitle  string
	DocAuthor string
	Sections  []string
	Texts     map[string]string
	Contents  []driven.TOCEntry
}

// NewMockDocument creates a document with the given section refs, each
// holding placeholder text.
func NewMockDocument(title string, refs ...string) *MockDocument {
	texts := make(map[string]string, len(refs))
	for _, r := range refs {
		texts[r] = fmt.Sprintf("placeholder text for %s", r)
	}
	return &MockDocument{DocTitle: title, Sections: refs, Texts: texts}
}

func (m *MockDocument) Title() string  { return m.DocTitle }
func (m *MockDocument) Author() string { return m.DocAuthor }

func (m *MockDocument) Spine() []driven.SpineItem {
	items := make([]driven.SpineItem, len(m.Sections))
	for i, r := range m.Sections {
		items[i] = driven.SpineItem{Ref: r, Index: i}
	}
	return items
}

func (m *MockDocument) TOC() []driven.TOCEntry { return m.Contents }

func (m *MockDocument) SectionText(ref string) (string, error) {
	text, ok := m.Texts[ref]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (m *MockDocument) SectionIndex(ref string) (int, error) {
	for i, r := range m.Sections {
		if r == ref {
			return i, nil
		}
	}
	return 0, domain.ErrNotFound
}

// MockDocumentLoader is a mock implementation of DocumentLoader for testing
type MockDocumentLoader struct {
	Docs    map[string]driven.Document
	OpenErr error
}

// NewMockDocumentLoader creates a new MockDocumentLoader
func NewMockDocumentLoader() *MockDocumentLoader {
	return &MockDocumentLoader{Docs: make(map[string]driven.Document)}
}

func (m *MockDocumentLoader) Open(path string) (driven.Document, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	doc, ok := m.Docs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
