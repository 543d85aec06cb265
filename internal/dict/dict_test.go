package dict

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeDictFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "freedict.json")
	content := `[
  {"word": "House", "phonetics": ["haʊs"], "pos": "noun", "translations": ["дом"]},
  {"word": "run", "phonetics": [], "pos": "verb", "translations": ["бежать", "бегать"]}
]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	d, err := Load(writeDictFile(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestLoad_MalformedErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for malformed file")
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	d, err := Load(writeDictFile(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	entry := d.Lookup("HOUSE")
	if entry.Word != "House" {
		t.Errorf("Word = %q, want the stored entry", entry.Word)
	}
	if !reflect.DeepEqual(entry.Translations, []string{"дом"}) {
		t.Errorf("Translations = %v, want [дом]", entry.Translations)
	}
}

func TestLookup_UnknownWordPlaceholder(t *testing.T) {
	d := New()

	entry := d.Lookup("Xyzzy")
	if entry.Word != "xyzzy" {
		t.Errorf("Word = %q, want the lowercased xyzzy", entry.Word)
	}
	if entry.POS != nil {
		t.Errorf("POS = %v, want nil", *entry.POS)
	}
	if len(entry.Phonetics) != 0 {
		t.Errorf("Phonetics = %v, want empty", entry.Phonetics)
	}
	if !reflect.DeepEqual(entry.Translations, []string{notFoundTranslation}) {
		t.Errorf("Translations = %v, want [%s]", entry.Translations, notFoundTranslation)
	}
}

func TestLookupBatch_KeysKeepOriginalCasing(t *testing.T) {
	d, err := Load(writeDictFile(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	result := d.LookupBatch([]string{"Run", "missing"})
	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	if result["Run"].Word != "run" {
		t.Errorf("Run entry = %+v, want the stored run entry", result["Run"])
	}
	if result["missing"].Translations[0] != notFoundTranslation {
		t.Errorf("missing entry = %+v, want placeholder", result["missing"])
	}
}
