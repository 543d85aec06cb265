package ingest

import (
	"reflect"
	"testing"
)

func TestTokenize_WordsPunctuationSpaces(t *testing.T) {
	got := Tokenize("Hello, world!")
	want := []string{"Hello", ",", " ", "world", "!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", got)
	}
}

func TestTokenize_ExtendedLatinAndApostrophes(t *testing.T) {
	got := Tokenize("café don’t l'été")
	want := []string{"café", " ", "don’t", " ", "l'été"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_SpaceRunsAreSingleTokens(t *testing.T) {
	got := Tokenize("a   b")
	want := []string{"a", "   ", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_PreservesOrderAndCase(t *testing.T) {
	got := Tokenize("The THE the")
	want := []string{"The", " ", "THE", " ", "the"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
