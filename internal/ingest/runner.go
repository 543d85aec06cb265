package ingest

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexibook/lexibook/internal/epub"
)

// Runner scans a source directory for EPUB files and processes each
// book not yet present in the index. Books run strictly sequentially;
// a book's identifier is appended to the index only after its pipeline
// finishes, so a failed or interrupted book is retried on the next run.
type Runner struct {
	SourceDir string
	DataDir   string
	Threshold int
}

// Run processes all pending books. Per-book failures are logged and do
// not stop the remaining books.
func (r *Runner) Run() error {
	if err := os.MkdirAll(r.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	index, err := LoadIndex(filepath.Join(r.DataDir, "index.json"))
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(r.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".epub") {
			continue
		}

		bookID := strings.TrimSuffix(name, filepath.Ext(name))
		if index.Has(bookID) {
			log.Printf("skipping %q: already processed", bookID)
			continue
		}

		log.Printf("processing %q", bookID)
		if err := r.processBook(filepath.Join(r.SourceDir, name), bookID); err != nil {
			log.Printf("warning: failed to process %q: %v", bookID, err)
			continue
		}

		if err := index.Add(bookID); err != nil {
			return err
		}
		log.Printf("done: %q", bookID)
	}

	return nil
}

// processBook runs the pipeline for a single EPUB file. The book's
// output directory is rebuilt from scratch, making a retried run
// idempotent.
func (r *Runner) processBook(epubPath, bookID string) error {
	reader, err := epub.Open(epubPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	outputDir := filepath.Join(r.DataDir, bookID)
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to clear output directory: %w", err)
	}

	pipeline := NewPipeline(reader, outputDir, r.Threshold)
	_, runErr := pipeline.Run()

	// Drain in-flight image writes before the reader closes.
	pipeline.Wait()

	return runErr
}
