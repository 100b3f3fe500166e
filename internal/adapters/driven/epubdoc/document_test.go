package epubdoc

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
)

// writeTestEPUB builds a minimal two-chapter EPUB in a temp dir.
func writeTestEPUB(t *testing.T) string {
	t.Helper()

	files := []struct {
		name, content string
	}{
		{"mimetype", "application/epub+zip"},
		{"META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`},
		{"OEBPS/content.opf", `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" unique-identifier="id" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:creator>A. Tester</dc:creator>
    <dc:identifier id="id">test-book-1</dc:identifier>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="ch01" href="ch01.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch02" href="ch02.xhtml" media-type="application/xhtml+xml"/>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="ch01"/>
    <itemref idref="ch02"/>
  </spine>
</package>`},
		{"OEBPS/toc.ncx", `<?xml version="1.0"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="n1" playOrder="1">
      <navLabel><text>Chapter One</text></navLabel>
      <content src="ch01.xhtml"/>
    </navPoint>
    <navPoint id="n2" playOrder="2">
      <navLabel><text>Chapter Two</text></navLabel>
      <content src="ch02.xhtml#start"/>
    </navPoint>
  </navMap>
</ncx>`},
		{"OEBPS/ch01.xhtml", `<html><head><title>One</title></head>
<body><h1>Chapter One</h1><p>The quick brown fox jumps over the lazy dog.</p></body></html>`},
		{"OEBPS/ch02.xhtml", `<html><body><h1>Chapter Two</h1><p>Pack my box with five dozen liquor jugs.</p></body></html>`},
	}

	path := filepath.Join(t.TempDir(), "test.epub")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.name)
		if err != nil {
			t.Fatalf("zip create %s: %v", file.name, err)
		}
		if _, err := w.Write([]byte(file.content)); err != nil {
			t.Fatalf("zip write %s: %v", file.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return path
}

func TestLoaderOpen(t *testing.T) {
	doc, err := NewLoader().Open(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if doc.Title() != "Test Book" {
		t.Errorf("title = %q", doc.Title())
	}
	if doc.Author() != "A. Tester" {
		t.Errorf("author = %q", doc.Author())
	}

	spine := doc.Spine()
	if len(spine) != 2 {
		t.Fatalf("spine length = %d, want 2", len(spine))
	}
	if spine[0].Ref != "ch01.xhtml" || spine[1].Ref != "ch02.xhtml" {
		t.Errorf("spine refs = %v", spine)
	}

	text, err := doc.SectionText("ch01.xhtml")
	if err != nil {
		t.Fatalf("section text: %v", err)
	}
	if !strings.Contains(text, "quick brown fox") {
		t.Errorf("section text missing content: %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Error("section text should be plain text, not markup")
	}

	idx, err := doc.SectionIndex("ch02.xhtml")
	if err != nil || idx != 1 {
		t.Errorf("section index = %d, %v", idx, err)
	}
	if _, err := doc.SectionText("missing.xhtml"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown section should return ErrNotFound, got %v", err)
	}
}

func TestLoaderTOC(t *testing.T) {
	doc, err := NewLoader().Open(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	toc := doc.TOC()
	if len(toc) != 2 {
		t.Fatalf("toc length = %d, want 2", len(toc))
	}
	if toc[0].Title != "Chapter One" || toc[0].SectionRef != "ch01.xhtml" {
		t.Errorf("toc[0] = %+v", toc[0])
	}
	// Fragment anchors are stripped from section refs.
	if toc[1].SectionRef != "ch02.xhtml" {
		t.Errorf("toc[1].SectionRef = %q", toc[1].SectionRef)
	}
}

func TestLoaderOpenMissingFile(t *testing.T) {
	if _, err := NewLoader().Open("/nonexistent/book.epub"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCodecEncodeAndResolve(t *testing.T) {
	doc, err := NewLoader().Open(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	codec := NewCodec(doc)

	sel := domain.Selection{
		AnchorSection: "ch01.xhtml",
		FocusSection:  "ch01.xhtml",
		Start:         12,
		End:           27,
		Text:          "placeholder",
	}
	locator, err := codec.EncodeSelection(sel)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if locator != "span(ch01.xhtml!12-27)" {
		t.Errorf("locator = %q", locator)
	}

	sp, err := codec.Resolve(locator)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sp.SectionRef != "ch01.xhtml" || sp.Start != 12 || sp.End != 27 {
		t.Errorf("span = %+v", sp)
	}
	if !codec.BelongsToSection(locator, "ch01.xhtml") {
		t.Error("locator should belong to its section")
	}
	if codec.BelongsToSection(locator, "ch02.xhtml") {
		t.Error("locator should not belong to another section")
	}
}

func TestCodecRejectsOutOfBounds(t *testing.T) {
	doc, err := NewLoader().Open(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	codec := NewCodec(doc)

	// Far past the end of the chapter text.
	if _, err := codec.Resolve("span(ch01.xhtml!5-100000)"); !errors.Is(err, domain.ErrUnresolvableRange) {
		t.Errorf("expected ErrUnresolvableRange, got %v", err)
	}
	// Unknown section.
	if _, err := codec.Resolve("span(gone.xhtml!1-5)"); !errors.Is(err, domain.ErrUnresolvableRange) {
		t.Errorf("expected ErrUnresolvableRange, got %v", err)
	}
}

func TestCodecCrossSection(t *testing.T) {
	doc, err := NewLoader().Open(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	codec := NewCodec(doc)

	sel := domain.Selection{
		AnchorSection: "ch01.xhtml",
		FocusSection:  "ch02.xhtml",
		Start:         1,
		End:           5,
		Text:          "x",
	}
	if _, err := codec.EncodeSelection(sel); !errors.Is(err, domain.ErrCrossSection) {
		t.Errorf("expected ErrCrossSection, got %v", err)
	}
}

func TestCodecSpanText(t *testing.T) {
	doc, err := NewLoader().Open(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	codec := NewCodec(doc)

	text, _ := doc.SectionText("ch01.xhtml")
	runes := []rune(text)
	want := string(runes[12:27])

	got, err := codec.SpanText("span(ch01.xhtml!12-27)")
	if err != nil {
		t.Fatalf("span text: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
