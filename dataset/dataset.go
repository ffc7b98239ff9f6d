// Package dataset keeps the statistics of named source/target corpora in
// insertion order.
package dataset

import (
	"github.com/revelaction/vocstat/stat"
)

// Pair holds the statistics of the two sides of a dataset. A nil side is
// absent, e.g. its file does not exist.
type Pair struct {
	Src *stat.Stats `json:"src"`
	Trg *stat.Stats `json:"trg"`
}

// Set is an ordered mapping from dataset name to Pair. Iteration follows
// the order in which names were first added.
type Set struct {
	names []string
	pairs map[string]Pair
}

func NewSet() *Set {
	return &Set{pairs: map[string]Pair{}}
}

// Add stores p under name. Re-adding a name replaces its pair and keeps its
// position.
func (s *Set) Add(name string, p Pair) {
	if _, ok := s.pairs[name]; !ok {
		s.names = append(s.names, name)
	}
	s.pairs[name] = p
}

func (s *Set) Get(name string) (Pair, bool) {
	p, ok := s.pairs[name]
	return p, ok
}

// Names returns the dataset names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *Set) Len() int {
	return len(s.names)
}

// Each calls fn for every dataset in insertion order.
func (s *Set) Each(fn func(name string, p Pair)) {
	for _, n := range s.names {
		fn(n, s.pairs[n])
	}
}
