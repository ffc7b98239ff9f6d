package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/vocstat/dataset"
	"github.com/revelaction/vocstat/stat"
)

// JSONRenderer writes datasets as a JSON array, in set order.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

type jsonDataset struct {
	Name string      `json:"name"`
	Src  *stat.Stats `json:"src"`
	Trg  *stat.Stats `json:"trg"`
}

// Render serializes set. Absent sides are null.
func (r *JSONRenderer) Render(set *dataset.Set) error {
	out := make([]jsonDataset, 0, set.Len())
	set.Each(func(name string, p dataset.Pair) {
		out = append(out, jsonDataset{Name: name, Src: p.Src, Trg: p.Trg})
	})

	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
