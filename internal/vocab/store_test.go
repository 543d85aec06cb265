package vocab

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "vocab.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := s.Words(); len(got) != 0 {
		t.Errorf("Words() = %v, want empty", got)
	}
}

func TestToggle_AddThenRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	added, err := s.Toggle("serendipity")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !added {
		t.Error("first Toggle() = removed, want added")
	}
	if got := s.Words(); !reflect.DeepEqual(got, []string{"serendipity"}) {
		t.Errorf("Words() = %v, want [serendipity]", got)
	}

	added, err = s.Toggle("serendipity")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if added {
		t.Error("second Toggle() = added, want removed")
	}
	if got := s.Words(); len(got) != 0 {
		t.Errorf("Words() = %v, want empty", got)
	}
}

func TestToggle_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for _, w := range []string{"alpha", "beta"} {
		if _, err := s.Toggle(w); err != nil {
			t.Fatalf("Toggle(%q) error = %v", w, err)
		}
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if got := reopened.Words(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("Words() after reopen = %v, want [alpha beta]", got)
	}
}

func TestOpen_CreatesParentDirOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users", "vocab.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Toggle("word"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("vocabulary file missing: %v", err)
	}
}

func TestOpen_MalformedErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("Open() expected error for malformed file")
	}
}
