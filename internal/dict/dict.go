package dict

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// notFoundTranslation is the sentinel returned for unknown words.
// Lookups never fail hard; an unknown word gets a placeholder entry.
const notFoundTranslation = "Word not found"

// Entry is one dictionary record.
type Entry struct {
	Word         string   `json:"word"`
	Phonetics    []string `json:"phonetics"`
	POS          *string  `json:"pos"`
	Translations []string `json:"translations"`
}

// Dictionary is a preloaded, case-folded word to entry map.
type Dictionary struct {
	entries map[string]Entry
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{entries: make(map[string]Entry)}
}

// Load reads a dictionary file: a JSON array of entries keyed by their
// lowercased word. A missing file yields an empty dictionary without
// error, so the server can start before the dictionary is provisioned.
func Load(path string) (*Dictionary, error) {
	d := New()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	for _, e := range entries {
		d.entries[strings.ToLower(e.Word)] = e
	}
	return d, nil
}

// Len returns the number of loaded entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Lookup returns the entry for a word, case-insensitively. Unknown
// words get a placeholder entry carrying the lowercased word.
func (d *Dictionary) Lookup(word string) Entry {
	if entry, ok := d.entries[strings.ToLower(word)]; ok {
		return entry
	}
	return Entry{
		Word:         strings.ToLower(word),
		Phonetics:    []string{},
		POS:          nil,
		Translations: []string{notFoundTranslation},
	}
}

// LookupBatch resolves several words at once, keyed by the words as
// given (original casing preserved in the keys).
func (d *Dictionary) LookupBatch(words []string) map[string]Entry {
	result := make(map[string]Entry, len(words))
	for _, w := range words {
		result[w] = d.Lookup(w)
	}
	return result
}
