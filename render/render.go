package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/revelaction/vocstat/dataset"
	"github.com/revelaction/vocstat/stat"
)

const (
	columnSep = "\t"
	srcHeader = "SRC"
	trgHeader = "TRG"
)

// Renderer writes statistics as human readable text.
type Renderer struct {
	Out io.Writer

	// Subword labels running words as subwords in tables.
	Subword bool

	numbers *message.Printer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		Out:     w,
		numbers: message.NewPrinter(language.English),
	}
}

// Block writes every field of s under header, followed by an empty line.
func (r *Renderer) Block(header string, s stat.Stats) {
	fmt.Fprintln(r.Out, header)
	fmt.Fprintf(r.Out, "# lines: %d\n", s.Lines)
	fmt.Fprintf(r.Out, "running words: %d\n", s.Tokens)
	fmt.Fprintf(r.Out, "vocabulary size: %d\n", s.Unique)
	fmt.Fprintf(r.Out, "reference vocabulary size: %d\n", s.RefSize)
	fmt.Fprintf(r.Out, "total oov rate: %.2f %%\n", s.TotalOOVRate*100)
	fmt.Fprintf(r.Out, "uniq oov rate: %.2f %%\n", s.UniqueOOVRate*100)
	fmt.Fprintf(r.Out, "reference oov rate: %.2f %%\n", s.RefOOVRate*100)
	fmt.Fprintf(r.Out, "oovs: %d\n", s.TotalOOV)
	fmt.Fprintf(r.Out, "unique oovs: %d\n", s.UniqueOOV)
	fmt.Fprintf(r.Out, "reference oovs: %d\n", s.RefOOV)
	fmt.Fprintf(r.Out, "singletons: %d\n", s.Singletons)
	fmt.Fprintf(r.Out, "avg. sentence length: %s\n", shortFloat(s.AvgSentenceLength))
	fmt.Fprintf(r.Out, "avg. oov words per sentence: %s\n", shortFloat(s.AvgOOVPerSentence))
	fmt.Fprintln(r.Out)
}

// Table writes the datasets of set side by side, one block of rows per
// dataset. Absent sides are left blank. Columns are padded to their widest
// cell.
func (r *Renderer) Table(set *dataset.Set) {
	rows := [][]string{{"", "", srcHeader, trgHeader}}

	set.Each(func(name string, p dataset.Pair) {
		rows = append(rows,
			r.row(name, "Sentences", p, func(s *stat.Stats) string { return r.numbers.Sprintf("%d", s.Lines) }),
			r.row("", r.wordsLabel(), p, func(s *stat.Stats) string { return r.numbers.Sprintf("%d", s.Tokens) }),
			r.row("", "Reference Vocabulary", p, func(s *stat.Stats) string { return strconv.Itoa(s.RefSize) }),
			r.row("", "Vocabulary", p, func(s *stat.Stats) string { return strconv.Itoa(s.Unique) }),
			r.row("", "OOV", p, func(s *stat.Stats) string { return fmt.Sprintf("%d (%.2f %%)", s.RefOOV, s.RefOOVRate*100) }),
			r.row("", "avg sentence length", p, func(s *stat.Stats) string { return strconv.Itoa(int(s.AvgSentenceLength)) }),
			[]string{""},
		)
	})

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(r.Out, strings.TrimRight(strings.Join(cells, columnSep), " \t"))
	}
}

func (r *Renderer) row(name, label string, p dataset.Pair, cell func(*stat.Stats) string) []string {
	return []string{name, label, optional(p.Src, cell), optional(p.Trg, cell)}
}

func (r *Renderer) wordsLabel() string {
	if r.Subword {
		return "Subwords"
	}
	return "Words"
}

func optional(s *stat.Stats, cell func(*stat.Stats) string) string {
	if s == nil {
		return ""
	}
	return cell(s)
}

// shortFloat formats f in its shortest form, keeping one decimal on whole
// numbers (3 is written 3.0).
func shortFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
