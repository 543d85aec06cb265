package ingest

import (
	"reflect"
	"testing"

	"github.com/lexibook/lexibook/internal/epub"
)

// recordingImageSaver records scheduled saves.
type recordingImageSaver struct {
	saved [][2]string // (manifestID, baseName)
}

func (r *recordingImageSaver) SaveImage(manifestID, baseName string) {
	r.saved = append(r.saved, [2]string{manifestID, baseName})
}

func testManifest() (map[string]epub.ManifestItem, []string) {
	manifest := map[string]epub.ManifestItem{
		"img1": {ID: "img1", Href: "OEBPS/images/cover.jpg", MediaType: "image/jpeg"},
		"img2": {ID: "img2", Href: "OEBPS/images/figure.png", MediaType: "image/png"},
	}
	return manifest, []string{"img1", "img2"}
}

func TestExtract_ClassifiesBlocksInDocumentOrder(t *testing.T) {
	html := `<html><body>
		<h1>Chapter One</h1>
		<p>First paragraph here.</p>
		<img src="../images/figure.png"/>
		<h2>Section</h2>
		<p>Second paragraph.</p>
	</body></html>`

	manifest, order := testManifest()
	e := NewExtractor(manifest, order, nil)

	blocks, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(blocks) != 5 {
		t.Fatalf("len(blocks) = %d, want 5", len(blocks))
	}

	if _, ok := blocks[0].(Heading); !ok {
		t.Errorf("blocks[0] = %T, want Heading", blocks[0])
	}
	if _, ok := blocks[1].(Paragraph); !ok {
		t.Errorf("blocks[1] = %T, want Paragraph", blocks[1])
	}
	img, ok := blocks[2].(Image)
	if !ok {
		t.Fatalf("blocks[2] = %T, want Image", blocks[2])
	}
	if img.Src != "images/figure.png" {
		t.Errorf("img.Src = %q, want %q", img.Src, "images/figure.png")
	}
	if _, ok := blocks[3].(Heading); !ok {
		t.Errorf("blocks[3] = %T, want Heading", blocks[3])
	}

	h := blocks[0].(Heading)
	want := []string{"Chapter", " ", "One"}
	if !reflect.DeepEqual(h.Words, want) {
		t.Errorf("heading words = %v, want %v", h.Words, want)
	}
}

func TestExtract_EmptyTextElementsDropped(t *testing.T) {
	html := `<html><body>
		<p>&nbsp; &nbsp;</p>
		<p></p>
		<h3>   </h3>
		<p>kept</p>
	</body></html>`

	manifest, order := testManifest()
	e := NewExtractor(manifest, order, nil)

	blocks, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("len(blocks) = %d, want 1", len(blocks))
	}
	p := blocks[0].(Paragraph)
	if !reflect.DeepEqual(p.Words, []string{"kept"}) {
		t.Errorf("words = %v, want [kept]", p.Words)
	}
}

func TestExtract_NewlinesCollapsedBeforeTokenizing(t *testing.T) {
	html := "<html><body><p>line one\n\nline two</p></body></html>"

	manifest, order := testManifest()
	e := NewExtractor(manifest, order, nil)

	blocks, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	p := blocks[0].(Paragraph)
	want := []string{"line", " ", "one", " ", "line", " ", "two"}
	if !reflect.DeepEqual(p.Words, want) {
		t.Errorf("words = %v, want %v", p.Words, want)
	}
}

func TestExtract_ImageWithoutSrcSkipped(t *testing.T) {
	html := `<html><body><img alt="decorative"/><p>text</p></body></html>`

	manifest, order := testManifest()
	e := NewExtractor(manifest, order, nil)

	blocks, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for _, b := range blocks {
		if _, ok := b.(Image); ok {
			t.Errorf("image without src emitted a block")
		}
	}
}

func TestExtract_ResolvedImagesScheduledForSaving(t *testing.T) {
	html := `<html><body>
		<img src="../../images/cover.jpg"/>
		<img src="images/missing.png"/>
	</body></html>`

	manifest, order := testManifest()
	saver := &recordingImageSaver{}
	e := NewExtractor(manifest, order, saver)

	blocks, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	// Both images emit blocks; only the resolved one is scheduled.
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}
	if blocks[0].(Image).Src != "images/cover.jpg" {
		t.Errorf("Src = %q, want %q", blocks[0].(Image).Src, "images/cover.jpg")
	}
	if len(saver.saved) != 1 {
		t.Fatalf("scheduled saves = %d, want 1", len(saver.saved))
	}
	if saver.saved[0] != [2]string{"img1", "cover.jpg"} {
		t.Errorf("scheduled = %v, want [img1 cover.jpg]", saver.saved[0])
	}
}

func TestChapterSlug(t *testing.T) {
	tests := []struct {
		href  string
		index int
		want  string
	}{
		{"OEBPS/text/Chapter_01.xhtml", 0, "chapter_01"},
		{"OEBPS/text/intro.html", 2, "intro"},
		{"OEBPS/text/???.xhtml", 4, "chapter_5"},
	}
	for _, tt := range tests {
		if got := ChapterSlug(tt.href, tt.index); got != tt.want {
			t.Errorf("ChapterSlug(%q, %d) = %q, want %q", tt.href, tt.index, got, tt.want)
		}
	}
}
