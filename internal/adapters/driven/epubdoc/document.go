// Package epubdoc loads EPUB files into documents with extracted plain text
// per spine section.
package epubdoc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.Document       = (*document)(nil)
	_ driven.DocumentLoader = (*Loader)(nil)
)

// Loader opens EPUB files from disk.
type Loader struct{}

// NewLoader creates a new EPUB document loader
func NewLoader() *Loader {
	return &Loader{}
}

// document is a fully-parsed EPUB. All section text is extracted eagerly so
// the underlying file is closed before the document is returned.
type document struct {
	title  string
	author string
	spine  []driven.SpineItem
	toc    []driven.TOCEntry
	texts  map[string]string
	index  map[string]int
}

// Open parses the EPUB at path
func (l *Loader) Open(filename string) (driven.Document, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in %s", filename)
	}
	book := rc.Rootfiles[0]

	doc := &document{
		title:  book.Metadata.Title,
		author: book.Metadata.Creator,
		texts:  make(map[string]string),
		index:  make(map[string]int),
	}

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil || ref.Item.HREF == "" {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		sectionRef := ref.Item.HREF
		idx := len(doc.spine)
		doc.spine = append(doc.spine, driven.SpineItem{Ref: sectionRef, Index: idx})
		doc.index[sectionRef] = idx
		doc.texts[sectionRef] = extractText(string(data))
	}

	if len(doc.spine) == 0 {
		return nil, fmt.Errorf("epub %s has no readable sections: %w", filename, domain.ErrInvalidInput)
	}

	// A missing or malformed NCX leaves an empty TOC, which is fine.
	doc.toc = parseTOC(filename, book)

	return doc, nil
}

func (d *document) Title() string             { return d.title }
func (d *document) Author() string            { return d.author }
func (d *document) Spine() []driven.SpineItem { return d.spine }
func (d *document) TOC() []driven.TOCEntry    { return d.toc }

func (d *document) SectionText(ref string) (string, error) {
	text, ok := d.texts[ref]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (d *document) SectionIndex(ref string) (int, error) {
	idx, ok := d.index[ref]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return idx, nil
}

// SectionLength returns the rune length of a section's extracted text.
func (d *document) SectionLength(ref string) (int, error) {
	text, err := d.SectionText(ref)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(text), nil
}

// extractText walks the section markup and joins text nodes with single
// spaces.
func extractText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if out.Len() > 0 {
					out.WriteString(" ")
				}
				out.WriteString(t)
			}
		}
		// Script and style bodies are not reading content.
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// parseTOC reads the NCX named in the manifest and flattens its nav tree.
func parseTOC(filename string, book *epub.Rootfile) []driven.TOCEntry {
	data, err := readNCX(filename, book)
	if err != nil {
		return nil
	}

	var parsed ncx
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil
	}
	return flattenNavPoints(parsed.NavMap.NavPoints, 0)
}

func flattenNavPoints(points []navPoint, depth int) []driven.TOCEntry {
	var entries []driven.TOCEntry
	for _, np := range points {
		src := np.Content.Src
		if idx := strings.Index(src, "#"); idx != -1 {
			src = src[:idx]
		}
		entries = append(entries, driven.TOCEntry{
			Title:      strings.TrimSpace(np.Label.Text),
			SectionRef: src,
			Depth:      depth,
		})
		entries = append(entries, flattenNavPoints(np.Children, depth+1)...)
	}
	return entries
}

// readNCX locates the NCX in the manifest, falling back to any .ncx entry in
// the archive.
func readNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in %s", filename)
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}
