package driven

// SpineItem is one entry in a document's linear reading order.
type SpineItem struct {
	Ref   string
	Index int
}

// TOCEntry is one entry of a document's table of contents.
type TOCEntry struct {
	Title      string
	SectionRef string
	Depth      int
}

// Document is an open book. Implementations extract and cache section text
// up front so lookups never touch the underlying file.
type Document interface {
	// Title returns the document title
	Title() string

	// Author returns the document author, possibly empty
	Author() string

	// Spine returns the linear reading order
	Spine() []SpineItem

	// TOC returns the table of contents, possibly empty
	TOC() []TOCEntry

	// SectionText returns the extracted plain text of a section.
	// Unknown refs return ErrNotFound.
	SectionText(ref string) (string, error)

	// SectionIndex returns the spine index of a section ref. Unknown
	// refs return ErrNotFound.
	SectionIndex(ref string) (int, error)
}

// DocumentLoader opens book files from disk.
type DocumentLoader interface {
	// Open parses the file at path into a Document
	Open(path string) (Document, error)
}
