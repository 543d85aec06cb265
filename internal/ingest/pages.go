package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// pageFile is the on-disk shape of one page.
type pageFile struct {
	PageIndex int     `json:"pageIndex"`
	Content   []Block `json:"content"`
}

// PageFileName returns the zero-padded file name for a page index.
func PageFileName(pageIndex int) string {
	return fmt.Sprintf("page_%03d.json", pageIndex)
}

// pageFileWriter persists pages as pages/page_NNN.json files.
type pageFileWriter struct {
	dir string
}

func (w *pageFileWriter) WritePage(pageIndex int, blocks []Block) error {
	data, err := json.MarshalIndent(pageFile{PageIndex: pageIndex, Content: blocks}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode page %d: %w", pageIndex, err)
	}
	path := filepath.Join(w.dir, PageFileName(pageIndex))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write page %d: %w", pageIndex, err)
	}
	return nil
}
