package vocab

import (
	"github.com/revelaction/vocstat/count"
)

// Resolution is the outcome of applying a Policy to a frequency table.
type Resolution struct {
	// Retained holds the counts that survive the policy. Singletons and the
	// unique token count are computed over it.
	Retained count.Table

	// Vocabulary is the set OOV is measured against.
	Vocabulary Vocabulary

	TotalOOV  int
	UniqueOOV int
}

// Policy decides which tokens of a corpus are in vocabulary.
type Policy interface {
	Resolve(t count.Table) Resolution
}

// NewPolicy returns Unrestricted for a negative cap and Capped otherwise.
func NewPolicy(limit int) Policy {
	if limit < 0 {
		return Unrestricted{}
	}
	return Capped{Size: limit}
}

// Unrestricted keeps every token; there is no OOV.
type Unrestricted struct{}

func (Unrestricted) Resolve(t count.Table) Resolution {
	return Resolution{
		Retained:   t,
		Vocabulary: FromTable(t),
	}
}

// Capped keeps the Size most frequent tokens when the corpus has more
// distinct tokens than that. Ties are broken by ascending token order.
type Capped struct {
	Size int
}

func (p Capped) Resolve(t count.Table) Resolution {
	if t.Distinct() <= p.Size {
		return Unrestricted{}.Resolve(t)
	}

	retained := make(count.Table, p.Size)
	for _, e := range t.Sorted()[:p.Size] {
		retained[e.Token] = e.Count
	}

	// OOV is measured on the full table while singletons are later
	// counted on the retained one.
	return Resolution{
		Retained:   retained,
		Vocabulary: FromTable(retained),
		TotalOOV:   t.Total() - retained.Total(),
		UniqueOOV:  t.Distinct() - p.Size,
	}
}

// Shared measures OOV against a vocabulary built from this corpus and its
// companion. The table itself is not truncated.
type Shared struct {
	Vocabulary Vocabulary
}

func (p Shared) Resolve(t count.Table) Resolution {
	return Resolution{
		Retained:   t,
		Vocabulary: p.Vocabulary,
		TotalOOV:   t.Total() - t.Sum(p.Vocabulary.Has),
		// may be negative when the shared set outgrows this corpus
		UniqueOOV: t.Distinct() - p.Vocabulary.Len(),
	}
}

// Fixed measures OOV of a held-out corpus against an already resolved
// vocabulary, typically the training one.
type Fixed struct {
	Vocabulary Vocabulary
}

func (p Fixed) Resolve(t count.Table) Resolution {
	unique := 0
	for tok := range t {
		if !p.Vocabulary.Has(tok) {
			unique++
		}
	}

	return Resolution{
		Retained:   t,
		Vocabulary: p.Vocabulary,
		TotalOOV:   t.Sum(func(tok string) bool { return !p.Vocabulary.Has(tok) }),
		UniqueOOV:  unique,
	}
}

// SharedVocabulary merges the tables of companion corpora and resolves the
// merged counts with NewPolicy(limit). The retained tokens form the shared
// set.
func SharedVocabulary(limit int, tables ...count.Table) Vocabulary {
	var merged count.Table
	if len(tables) > 0 {
		merged = tables[0].Merge(tables[1:]...)
	}
	return NewPolicy(limit).Resolve(merged).Vocabulary
}
