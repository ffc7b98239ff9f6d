// Package unknown accumulates the tokens and lines of a corpus that are
// absent from a reference vocabulary.
package unknown

import (
	"sort"
)

// Line is a corpus line containing at least one unknown token.
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Record is a sorted, read-only snapshot of a Tracker.
type Record struct {
	Words []string `json:"words"`
	Lines []Line   `json:"lines"`
}

// Tracker is a passive accumulator filled by the frequency counter. A nil
// *Tracker can be queried and reports nothing.
type Tracker struct {
	words map[string]struct{}

	// lines is keyed by line index, so a line with several unknown tokens
	// is stored once.
	lines map[int]string
}

func NewTracker() *Tracker {
	return &Tracker{
		words: map[string]struct{}{},
		lines: map[int]string{},
	}
}

// Add records an unknown token found in the line at index.
func (t *Tracker) Add(index int, line, token string) {
	t.words[token] = struct{}{}
	t.lines[index] = line
}

// Has reports whether token was recorded as unknown.
func (t *Tracker) Has(token string) bool {
	if t == nil {
		return false
	}
	_, ok := t.words[token]
	return ok
}

// Words returns the unique unknown tokens in ascending order.
func (t *Tracker) Words() []string {
	if t == nil {
		return nil
	}

	words := make([]string, 0, len(t.words))
	for w := range t.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Lines returns the lines holding unknown tokens, ordered by index.
func (t *Tracker) Lines() []Line {
	if t == nil {
		return nil
	}

	lines := make([]Line, 0, len(t.lines))
	for idx, text := range t.lines {
		lines = append(lines, Line{Index: idx, Text: text})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Index < lines[j].Index
	})
	return lines
}

func (t *Tracker) Record() Record {
	return Record{Words: t.Words(), Lines: t.Lines()}
}
