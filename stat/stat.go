package stat

import (
	"fmt"

	"github.com/revelaction/vocstat/count"
	"github.com/revelaction/vocstat/unknown"
	"github.com/revelaction/vocstat/vocab"
)

// Stats is the statistics record of one corpus pass. It is built by New and
// never modified afterwards.
type Stats struct {
	Lines  int `json:"lines"`
	Tokens int `json:"tokens"`

	// Unique is the size of the retained vocabulary.
	Unique int `json:"unique"`

	TotalOOV  int `json:"total_oov"`
	UniqueOOV int `json:"unique_oov"`

	// RefOOV counts the retained occurrences missing from the reference
	// vocabulary; RefSize is the reference size, 0 without reference.
	RefOOV  int `json:"ref_oov"`
	RefSize int `json:"ref_size"`

	// Singletons are retained tokens occurring exactly once.
	Singletons int `json:"singletons"`

	Unknown unknown.Record `json:"unknown"`

	TotalOOVRate      float64 `json:"total_oov_rate"`
	UniqueOOVRate     float64 `json:"unique_oov_rate"`
	RefOOVRate        float64 `json:"ref_oov_rate"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	AvgOOVPerSentence float64 `json:"avg_oov_per_sentence"`
}

// DegenerateInputError is returned for corpora whose rates would divide by
// zero: no lines, no tokens or an empty retained vocabulary.
type DegenerateInputError struct {
	Lines  int
	Tokens int
	Unique int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate corpus: %d lines, %d tokens, %d retained tokens", e.Lines, e.Tokens, e.Unique)
}

// Input gathers what a Stats record is computed from.
type Input struct {
	Lines      int
	Tokens     int
	Resolution vocab.Resolution

	// Reference is optional.
	Reference vocab.Reference

	// Unknown is optional.
	Unknown *unknown.Tracker
}

// New computes the derived counts and rates.
func New(in Input) (Stats, error) {
	retained := in.Resolution.Retained
	unique := retained.Distinct()

	if in.Lines == 0 || in.Tokens == 0 || unique == 0 {
		return Stats{}, &DegenerateInputError{Lines: in.Lines, Tokens: in.Tokens, Unique: unique}
	}

	refOOV := 0
	if in.Reference != nil {
		refOOV = retained.Sum(func(tok string) bool { return !in.Reference.Has(tok) })
	}

	s := Stats{
		Lines:      in.Lines,
		Tokens:     in.Tokens,
		Unique:     unique,
		TotalOOV:   in.Resolution.TotalOOV,
		UniqueOOV:  in.Resolution.UniqueOOV,
		RefOOV:     refOOV,
		RefSize:    in.Reference.Len(),
		Singletons: retained.Singletons(),
		Unknown:    in.Unknown.Record(),
	}

	tokens := float64(s.Tokens)
	lines := float64(s.Lines)

	s.TotalOOVRate = float64(s.TotalOOV) / tokens
	s.UniqueOOVRate = float64(s.UniqueOOV) / float64(s.Unique)
	s.RefOOVRate = float64(s.RefOOV) / tokens
	s.AvgSentenceLength = tokens / lines
	s.AvgOOVPerSentence = float64(s.TotalOOV) / lines

	return s, nil
}

// Compute resolves the table of a counting pass with p and builds its Stats.
func Compute(res count.Result, p vocab.Policy, ref vocab.Reference) (Stats, error) {
	return New(Input{
		Lines:      res.Lines,
		Tokens:     res.Tokens,
		Resolution: p.Resolve(res.Table),
		Reference:  ref,
		Unknown:    res.Unknown,
	})
}
