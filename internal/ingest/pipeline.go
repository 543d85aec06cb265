package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lexibook/lexibook/internal/epub"
)

// BookReader is the surface of the EPUB reader the pipeline consumes.
type BookReader interface {
	Metadata() epub.Metadata
	Manifest() map[string]epub.ManifestItem
	ManifestOrder() []string
	Flow() []epub.FlowEntry
	ReadChapter(id string) ([]byte, error)
	ReadResource(id string) ([]byte, error)
}

// ChapterSpan is the inclusive page range a chapter occupies after
// pagination. A chapter that produced no blocks keeps the sentinel
// EndPage = StartPage-1; consumers treat the inverted range as empty.
type ChapterSpan struct {
	Title     string `json:"title"`
	StartPage int    `json:"startPage"`
	EndPage   int    `json:"endPage"`
}

// BookMetadata is the per-book record written after the pipeline
// completes.
type BookMetadata struct {
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	Cover         *string       `json:"cover"`
	TotalPages    int           `json:"totalPages"`
	TotalChapters int           `json:"totalChapters"`
	UniqueWords   int           `json:"uniqueWords"`
	Chapters      []ChapterSpan `json:"chapters"`
}

// Pipeline drives one book end to end: cover extraction, per-chapter
// content extraction and pagination, frequency accounting, and the
// final metadata write. Chapters are processed strictly in spine order;
// the page counter and frequency table are threaded through them
// sequentially. Inline image saves run on goroutines and are not
// awaited before the metadata write; call Wait to drain them.
type Pipeline struct {
	reader    BookReader
	outputDir string
	threshold int

	imageWrites sync.WaitGroup
}

// NewPipeline creates a pipeline writing a book's outputs under
// outputDir. A non-positive threshold selects MinWordsPerPage.
func NewPipeline(reader BookReader, outputDir string, threshold int) *Pipeline {
	if threshold <= 0 {
		threshold = MinWordsPerPage
	}
	return &Pipeline{
		reader:    reader,
		outputDir: outputDir,
		threshold: threshold,
	}
}

// Run processes the book and returns its metadata. A chapter whose raw
// HTML cannot be read is skipped with a diagnostic; only output-write
// failures abort the run.
func (p *Pipeline) Run() (*BookMetadata, error) {
	rawDir := filepath.Join(p.outputDir, "raw_chapters")
	imgDir := filepath.Join(p.outputDir, "images")
	pagesDir := filepath.Join(p.outputDir, "pages")
	for _, dir := range []string{rawDir, imgDir, pagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cover := p.saveCover()

	freq := NewFrequency()
	pager := NewPaginator(&pageFileWriter{dir: pagesDir}, p.threshold)
	extractor := NewExtractor(p.reader.Manifest(), p.reader.ManifestOrder(), p)

	var spans []ChapterSpan
	for i, chapter := range p.reader.Flow() {
		title := chapter.Title
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}

		raw, err := p.reader.ReadChapter(chapter.ID)
		if err != nil {
			log.Printf("warning: failed to read chapter %d (%s): %v, skipping", i+1, chapter.Href, err)
			continue
		}

		name := ChapterSlug(chapter.Href, i) + ".xhtml"
		if err := os.WriteFile(filepath.Join(rawDir, name), raw, 0o644); err != nil {
			return nil, fmt.Errorf("failed to archive chapter %q: %w", name, err)
		}

		blocks, err := extractor.Extract(raw)
		if err != nil {
			log.Printf("warning: failed to parse chapter %d (%s): %v, skipping", i+1, chapter.Href, err)
			continue
		}

		span, err := pager.AppendChapter(blocks)
		if err != nil {
			return nil, err
		}
		freq.AddBlocks(blocks)

		spans = append(spans, ChapterSpan{Title: title, StartPage: span.Start, EndPage: span.End})
	}

	if err := p.writeFrequency(freq); err != nil {
		return nil, err
	}

	md := &BookMetadata{
		Title:         p.reader.Metadata().Title,
		Author:        p.reader.Metadata().Creator,
		Cover:         cover,
		TotalPages:    pager.PageCount(),
		TotalChapters: len(spans),
		UniqueWords:   freq.Len(),
		Chapters:      spans,
	}
	if md.Title == "" {
		md.Title = "Unknown Title"
	}
	if md.Author == "" {
		md.Author = "Unknown Author"
	}
	if md.Chapters == nil {
		md.Chapters = []ChapterSpan{}
	}

	if err := p.writeMetadata(md); err != nil {
		return nil, err
	}
	return md, nil
}

// Wait blocks until all scheduled image writes have finished. The
// runner calls it between books, before closing the EPUB reader.
func (p *Pipeline) Wait() {
	p.imageWrites.Wait()
}

// SaveImage schedules a manifest resource write to images/<baseName>.
// Failures are logged and never unwind the pipeline.
func (p *Pipeline) SaveImage(manifestID, baseName string) {
	p.imageWrites.Add(1)
	go func() {
		defer p.imageWrites.Done()
		if err := p.writeResource(manifestID, baseName); err != nil {
			log.Printf("warning: failed to save image %q: %v", baseName, err)
		}
	}()
}

func (p *Pipeline) writeResource(manifestID, baseName string) error {
	data, err := p.reader.ReadResource(manifestID)
	if err != nil {
		return err
	}
	data = downscaleImage(data)
	return os.WriteFile(filepath.Join(p.outputDir, "images", baseName), data, 0o644)
}

// saveCover locates and extracts the cover image, returning its path
// relative to the book's output directory, or nil when no cover was
// found or extraction failed.
func (p *Pipeline) saveCover() *string {
	item, found := p.findCover()
	if !found {
		return nil
	}

	baseName := path.Base(item.Href)
	if err := p.writeResource(item.ID, baseName); err != nil {
		log.Printf("warning: failed to save cover %q: %v", baseName, err)
		return nil
	}

	coverPath := "images/" + baseName
	return &coverPath
}

// findCover returns the first manifest entry with an image media type
// whose id contains a cover marker. When no id matches, the EPUB 3
// cover-image manifest property is checked, then the EPUB 2 meta
// cover id from the package metadata.
func (p *Pipeline) findCover() (epub.ManifestItem, bool) {
	manifest := p.reader.Manifest()

	for _, id := range p.reader.ManifestOrder() {
		item, ok := manifest[id]
		if !ok || !isImageMediaType(item.MediaType) {
			continue
		}
		if strings.Contains(strings.ToLower(item.ID), "cover") {
			return item, true
		}
	}

	for _, id := range p.reader.ManifestOrder() {
		item, ok := manifest[id]
		if !ok || !isImageMediaType(item.MediaType) {
			continue
		}
		for _, prop := range item.Properties {
			if strings.EqualFold(prop, "cover-image") {
				return item, true
			}
		}
	}

	if coverID := p.reader.Metadata().CoverID; coverID != "" {
		if item, ok := manifest[coverID]; ok && isImageMediaType(item.MediaType) {
			return item, true
		}
	}

	return epub.ManifestItem{}, false
}

func (p *Pipeline) writeFrequency(freq *Frequency) error {
	data, err := json.MarshalIndent(freq, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frequency table: %w", err)
	}
	path := filepath.Join(p.outputDir, "uniqueWords.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write frequency table: %w", err)
	}
	return nil
}

func (p *Pipeline) writeMetadata(md *BookMetadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	path := filepath.Join(p.outputDir, "metadata.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// isImageMediaType checks if a media type indicates an image format
func isImageMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}
