// Package count builds token frequency tables from line oriented corpora.
package count

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/revelaction/vocstat/token"
	"github.com/revelaction/vocstat/unknown"
)

// Table maps a token to its number of occurrences.
type Table map[string]int

// Entry is a token and its count.
type Entry struct {
	Token string
	Count int
}

// Total returns the sum of all counts.
func (t Table) Total() int {
	total := 0
	for _, c := range t {
		total += c
	}
	return total
}

// Distinct returns the number of different tokens.
func (t Table) Distinct() int {
	return len(t)
}

// Singletons returns the number of tokens occurring exactly once.
func (t Table) Singletons() int {
	n := 0
	for _, c := range t {
		if c == 1 {
			n++
		}
	}
	return n
}

// Sum returns the sum of the counts of the tokens accepted by keep.
func (t Table) Sum(keep func(string) bool) int {
	sum := 0
	for tok, c := range t {
		if keep(tok) {
			sum += c
		}
	}
	return sum
}

// Sorted returns all entries by descending count. Equal counts are ordered
// by ascending token, so the order never depends on map iteration.
func (t Table) Sorted() []Entry {
	entries := make([]Entry, 0, len(t))
	for tok, c := range t {
		entries = append(entries, Entry{Token: tok, Count: c})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Token < entries[j].Token
	})

	return entries
}

// Merge returns a new table holding the summed counts of t and others.
func (t Table) Merge(others ...Table) Table {
	merged := make(Table, len(t))
	for tok, c := range t {
		merged[tok] += c
	}
	for _, o := range others {
		for tok, c := range o {
			merged[tok] += c
		}
	}
	return merged
}

// Lookup is satisfied by reference vocabularies.
type Lookup interface {
	Has(token string) bool
}

// Result is the outcome of a single pass over a corpus.
type Result struct {
	Table  Table
	Lines  int
	Tokens int

	// Unknown is nil when the pass ran without a reference vocabulary.
	Unknown *unknown.Tracker
}

// Counter counts the tokens of a corpus stream.
type Counter struct {
	// Reference, if set, enables unknown token tracking.
	Reference Lookup

	// OnLine is called after each line with the number of lines read so far.
	OnLine func(n int)
}

// Count reads r to the end, one sentence per line.
func (c *Counter) Count(r io.Reader) (Result, error) {
	res := Result{Table: Table{}}
	if c.Reference != nil {
		res.Unknown = unknown.NewTracker()
	}

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Result{}, fmt.Errorf("reading line %d: %w", res.Lines, err)
		}

		// a final line without terminator still counts, an empty tail does not
		if raw == "" && err != nil {
			break
		}

		c.line(&res, raw)

		if c.OnLine != nil {
			c.OnLine(res.Lines)
		}

		if err != nil {
			break
		}
	}

	return res, nil
}

func (c *Counter) line(res *Result, raw string) {
	idx := res.Lines
	res.Lines++

	tokens := token.Split(token.Trim(raw))
	res.Tokens += len(tokens)

	for _, tok := range tokens {
		res.Table[tok]++
		if res.Unknown != nil && !c.Reference.Has(tok) {
			res.Unknown.Add(idx, token.Terminator(raw), tok)
		}
	}
}
