// Package wordlist merges per-book frequency tables into one unique
// word list, filtered against a common-words file.
package wordlist

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var asciiWordRe = regexp.MustCompile(`^[a-zA-Z]+$`)

// Options configures a merge run.
type Options struct {
	// DataDir is the root holding per-book output directories.
	DataDir string
	// Books are the book identifiers to include.
	Books []string
	// CommonWordsPath is an optional file of words to exclude, one per
	// line.
	CommonWordsPath string
	// OutputPath receives the sorted word list, one word per line.
	OutputPath string
}

// Merge collects the keys of each book's uniqueWords.json, normalizes
// them (apostrophes stripped, lowercased), keeps only pure ASCII-letter
// words not present in the common-words list, and writes the sorted
// result. It returns the number of words written. Books without a
// frequency table are skipped with a warning.
func Merge(opts Options) (int, error) {
	common, err := loadCommonWords(opts.CommonWordsPath)
	if err != nil {
		log.Printf("warning: failed to load common words: %v", err)
		common = make(map[string]bool)
	}

	unique := make(map[string]bool)
	for _, book := range opts.Books {
		tablePath := filepath.Join(opts.DataDir, book, "uniqueWords.json")
		data, err := os.ReadFile(tablePath)
		if err != nil {
			log.Printf("warning: skipping %q: %v", book, err)
			continue
		}

		var table map[string]int
		if err := json.Unmarshal(data, &table); err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", tablePath, err)
		}

		for word := range table {
			normalized := normalizeWord(word)
			if asciiWordRe.MatchString(normalized) && !common[normalized] {
				unique[normalized] = true
			}
		}
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	sort.Strings(words)

	out := strings.Join(words, "\n")
	if err := os.WriteFile(opts.OutputPath, []byte(out), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write word list: %w", err)
	}
	return len(words), nil
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.ReplaceAll(word, "'", ""))
}

func loadCommonWords(path string) (map[string]bool, error) {
	words := make(map[string]bool)
	if path == "" {
		return words, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := strings.ToLower(strings.TrimSpace(scanner.Text())); w != "" {
			words[w] = true
		}
	}
	return words, scanner.Err()
}
