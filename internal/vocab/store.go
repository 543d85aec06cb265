package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the user's vocabulary as a flat JSON array of words.
// Membership is toggled: adding an existing word removes it. The store
// is safe for concurrent use by HTTP handlers.
type Store struct {
	path string

	mu    sync.Mutex
	words []string
}

// Open loads the vocabulary at path; a missing file yields an empty
// list.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	if err := json.Unmarshal(data, &s.words); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	return s, nil
}

// Words returns the current word list.
func (s *Store) Words() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Toggle adds the word when absent and removes it when present,
// persisting the list either way. It reports whether the word was
// added.
func (s *Store) Toggle(word string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := true
	for i, w := range s.words {
		if w == word {
			s.words = append(s.words[:i], s.words[i+1:]...)
			added = false
			break
		}
	}
	if added {
		s.words = append(s.words, word)
	}

	if err := s.save(); err != nil {
		return false, err
	}
	return added, nil
}

func (s *Store) save() error {
	words := s.words
	if words == nil {
		words = []string{}
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create vocabulary directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vocabulary: %w", err)
	}
	return nil
}
