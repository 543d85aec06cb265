package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIndex_MissingFileIsEmpty(t *testing.T) {
	idx, err := LoadIndex(filepath.Join(t.TempDir(), "index.json"))
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if idx.Has("anything") {
		t.Error("empty index reports a book as processed")
	}
	if len(idx.IDs()) != 0 {
		t.Errorf("IDs() = %v, want empty", idx.IDs())
	}
}

func TestIndex_AddPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	idx, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if err := idx.Add("moby-dick"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := idx.Add("walden"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reloaded, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex() after Add error = %v", err)
	}
	if !reloaded.Has("moby-dick") || !reloaded.Has("walden") {
		t.Error("reloaded index lost entries")
	}
	if got := reloaded.IDs(); !reflect.DeepEqual(got, []string{"moby-dick", "walden"}) {
		t.Errorf("IDs() = %v, want insertion order", got)
	}
}

func TestIndex_AddIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	idx, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if err := idx.Add("moby-dick"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := idx.Add("moby-dick"); err != nil {
		t.Fatalf("second Add() error = %v", err)
	}
	if got := len(idx.IDs()); got != 1 {
		t.Errorf("len(IDs()) = %d, want 1", got)
	}
}

func TestIndex_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadIndex(path); err == nil {
		t.Fatal("LoadIndex() expected error for malformed file")
	}
}
