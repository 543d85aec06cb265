package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Index tracks the identifiers of books that completed processing. It
// is loaded once at pipeline start and rewritten after each book
// reaches done; a book interrupted mid-run is therefore reprocessed on
// the next run.
type Index struct {
	path string
	ids  []string
	seen map[string]bool
}

// LoadIndex reads an index file; a missing file yields an empty index.
func LoadIndex(path string) (*Index, error) {
	idx := &Index{path: path, seen: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	if err := json.Unmarshal(data, &idx.ids); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}
	for _, id := range idx.ids {
		idx.seen[id] = true
	}
	return idx, nil
}

// Has reports whether a book identifier is already processed.
func (x *Index) Has(id string) bool {
	return x.seen[id]
}

// IDs returns the processed identifiers in insertion order.
func (x *Index) IDs() []string {
	out := make([]string, len(x.ids))
	copy(out, x.ids)
	return out
}

// Add appends an identifier and rewrites the index file.
func (x *Index) Add(id string) error {
	if x.seen[id] {
		return nil
	}
	x.ids = append(x.ids, id)
	x.seen[id] = true

	data, err := json.MarshalIndent(x.ids, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := os.WriteFile(x.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
