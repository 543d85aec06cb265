package ingest

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Frequency accumulates case-folded token counts across all text
// blocks of a book.
type Frequency struct {
	counts map[string]int
	order  []string // first-seen order, the tiebreaker for equal counts
}

// WordCount is one (word, count) pair of the finalized table.
type WordCount struct {
	Word  string
	Count int
}

// NewFrequency creates an empty accumulator.
func NewFrequency() *Frequency {
	return &Frequency{counts: make(map[string]int)}
}

// Add case-folds a token and increments its count.
func (f *Frequency) Add(token string) {
	word := strings.ToLower(token)
	if _, ok := f.counts[word]; !ok {
		f.order = append(f.order, word)
	}
	f.counts[word]++
}

// AddBlocks folds every token of every text block into the table.
// Image blocks carry no tokens and are skipped.
func (f *Frequency) AddBlocks(blocks []Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case Heading:
			for _, w := range v.Words {
				f.Add(w)
			}
		case Paragraph:
			for _, w := range v.Words {
				f.Add(w)
			}
		case Image:
		}
	}
}

// Len returns the number of distinct case-folded words.
func (f *Frequency) Len() int {
	return len(f.counts)
}

// Sorted returns the table ordered by count descending. Equal counts
// keep the order in which the words were first encountered.
func (f *Frequency) Sorted() []WordCount {
	out := make([]WordCount, len(f.order))
	for i, w := range f.order {
		out[i] = WordCount{Word: w, Count: f.counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// MarshalJSON encodes the table as a JSON object whose key order is
// the descending count order.
func (f *Frequency) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, wc := range f.Sorted() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(wc.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(wc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
