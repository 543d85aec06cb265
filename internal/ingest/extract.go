package ingest

import (
	"bytes"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gosimple/slug"

	"github.com/lexibook/lexibook/internal/epub"
)

var (
	leadingParentsRe = regexp.MustCompile(`^(\.\./)+`)
	newlineRunRe     = regexp.MustCompile(`\n+`)
	nbspReplacer     = strings.NewReplacer("&nbsp;", "", " ", "")
)

// ImageSaver schedules extraction of a manifest resource to the images
// output location under the given base file name. Implementations may
// run the save asynchronously; the extractor does not wait for it.
type ImageSaver interface {
	SaveImage(manifestID, baseName string)
}

// Extractor walks a chapter's markup and classifies heading, paragraph
// and image elements into content blocks.
type Extractor struct {
	manifest      map[string]epub.ManifestItem
	manifestOrder []string
	images        ImageSaver
}

// NewExtractor creates an extractor resolving image references against
// the given manifest. images may be nil when no resource extraction is
// wanted.
func NewExtractor(manifest map[string]epub.ManifestItem, manifestOrder []string, images ImageSaver) *Extractor {
	return &Extractor{
		manifest:      manifest,
		manifestOrder: manifestOrder,
		images:        images,
	}
}

// Extract parses raw chapter HTML and returns its content blocks in
// document order. Text elements with no tokens are dropped; image
// elements without a src attribute are skipped entirely.
func (e *Extractor) Extract(rawHTML []byte) ([]Block, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chapter: %w", err)
	}

	var blocks []Block
	doc.Find("h1,h2,h3,h4,h5,h6,p,img").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		if tag == "img" {
			src, ok := s.Attr("src")
			if !ok || src == "" {
				return
			}
			cleanSrc := leadingParentsRe.ReplaceAllString(src, "")
			baseName := path.Base(cleanSrc)

			if id, found := e.resolveImage(cleanSrc); found {
				if e.images != nil {
					e.images.SaveImage(id, baseName)
				}
			} else {
				log.Printf("warning: image %q not found in manifest", cleanSrc)
			}

			blocks = append(blocks, Image{Src: cleanSrc})
			return
		}

		text := nbspReplacer.Replace(s.Text())
		text = newlineRunRe.ReplaceAllString(strings.TrimSpace(text), " ")
		words := Tokenize(text)
		if len(words) == 0 {
			return
		}

		if isHeadingTag(tag) {
			blocks = append(blocks, Heading{Words: words})
		} else {
			blocks = append(blocks, Paragraph{Words: words})
		}
	})

	return blocks, nil
}

// resolveImage finds the manifest item whose href ends with the
// normalized source path. Manifest document order makes the match
// deterministic.
func (e *Extractor) resolveImage(cleanSrc string) (string, bool) {
	for _, id := range e.manifestOrder {
		item, ok := e.manifest[id]
		if !ok {
			continue
		}
		if strings.HasSuffix(item.Href, cleanSrc) {
			return id, true
		}
	}
	return "", false
}

func isHeadingTag(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// ChapterSlug derives a filesystem-safe name for a chapter's archival
// file from its source href. index is the zero-based chapter position,
// used for the fallback name when the slug comes out empty.
func ChapterSlug(href string, index int) string {
	base := path.Base(href)
	base = strings.TrimSuffix(base, path.Ext(base))
	if s := slug.Make(base); s != "" {
		return s
	}
	return fmt.Sprintf("chapter_%d", index+1)
}
