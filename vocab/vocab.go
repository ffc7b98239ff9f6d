// Package vocab derives retained vocabularies from frequency tables and
// holds the reference vocabularies OOV rates are measured against.
package vocab

import (
	"sort"

	"github.com/revelaction/vocstat/count"
)

// Unlimited is the size cap meaning "keep every token".
const Unlimited = -1

// Vocabulary is a set of retained tokens.
type Vocabulary map[string]struct{}

// FromTable returns the set of keys of t.
func FromTable(t count.Table) Vocabulary {
	v := make(Vocabulary, len(t))
	for tok := range t {
		v[tok] = struct{}{}
	}
	return v
}

func (v Vocabulary) Has(tok string) bool {
	_, ok := v[tok]
	return ok
}

func (v Vocabulary) Len() int {
	return len(v)
}

// Tokens returns the tokens of the vocabulary in ascending order.
func (v Vocabulary) Tokens() []string {
	toks := make([]string, 0, len(v))
	for tok := range v {
		toks = append(toks, tok)
	}
	sort.Strings(toks)
	return toks
}

// Reference is an externally supplied vocabulary (e.g. the one of a trained
// model), mapping a token to its identifier. It is read-only once loaded.
type Reference map[string]int

// Has reports whether tok is in the reference. A nil Reference has no tokens.
func (r Reference) Has(tok string) bool {
	_, ok := r[tok]
	return ok
}

func (r Reference) Len() int {
	return len(r)
}
