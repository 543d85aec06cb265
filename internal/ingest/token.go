package ingest

import "regexp"

// tokenPattern matches, in order of preference: a run of extended-Latin
// letters / word characters / apostrophes, a single non-word non-space
// symbol, or a run of plain spaces. Newlines are expected to have been
// collapsed to spaces before tokenizing.
var tokenPattern = regexp.MustCompile(`[\x{00C0}-\x{024F}\w’']+|[^\w\s]| +`)

// Tokenize splits plain text into word, punctuation and space-run
// tokens, preserving input order. No case or accent normalization is
// performed; callers case-fold as needed.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}
