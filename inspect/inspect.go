package inspect

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/vocstat/corpus"
)

const (
	maxSuggestions = 12
	defaultTop     = 10

	cmdTop  = "top"
	cmdQuit = "quit"
)

// Handler is an interactive token inspector over the training corpora of a
// report.
type Handler struct {
	Report corpus.Report
	Out    io.Writer

	// ranked holds the tokens of both sides by descending training count,
	// used for completion.
	ranked []string
}

func NewHandler(r corpus.Report, out io.Writer) *Handler {
	merged := r.Src.Table.Merge(r.Trg.Table)
	ranked := make([]string, 0, len(merged))
	for _, e := range merged.Sorted() {
		ranked = append(ranked, e.Token)
	}

	return &Handler{
		Report: r,
		Out:    out,
		ranked: ranked,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 <token>: lookup, top [n]: most frequent tokens, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔎 ", h.completer(),
			prompt.OptionTitle("vocstat inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionHistory(history),
		)

		if in == cmdQuit {
			return nil
		}

		history = append(history, in)

		out, err := h.Eval(in)
		if err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
			continue
		}

		fmt.Fprint(h.Out, out)
	}
}

// Eval answers one line of input.
func (h *Handler) Eval(in string) (string, error) {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return "", errors.New("no token given")
	}

	if fields[0] == cmdTop {
		n := defaultTop
		if len(fields) > 1 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v <= 0 {
				return "", fmt.Errorf("invalid number: %s", fields[1])
			}
			n = v
		}
		return h.Top(n), nil
	}

	// tokens may contain no spaces, look the whole line up word by word
	var sb strings.Builder
	for _, tok := range fields {
		sb.WriteString(h.Lookup(tok))
	}
	return sb.String(), nil
}

// Lookup describes tok on both training sides.
func (h *Handler) Lookup(tok string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q\n", tok)
	for _, side := range h.sides() {
		fmt.Fprintf(&sb, "  %s: count %d, %s", side.name, side.Table[tok], retained(side.Vocabulary.Has(tok)))
		if side.Reference != nil {
			fmt.Fprintf(&sb, ", %s", known(side.Reference.Has(tok)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Top lists the n most frequent retained tokens of each side.
func (h *Handler) Top(n int) string {
	var sb strings.Builder
	for _, side := range h.sides() {
		fmt.Fprintf(&sb, "%s:\n", side.name)
		i := 0
		for _, e := range side.Table.Sorted() {
			if i == n {
				break
			}
			if !side.Vocabulary.Has(e.Token) {
				continue
			}
			i++
			fmt.Fprintf(&sb, "  %3d %8d %q\n", i, e.Count, e.Token)
		}
	}
	return sb.String()
}

type namedSide struct {
	name string
	corpus.Side
}

func (h *Handler) sides() []namedSide {
	return []namedSide{{"src", h.Report.Src}, {"trg", h.Report.Trg}}
}

// Suggest returns up to maxSuggestions tokens starting with prefix, most
// frequent first.
func (h *Handler) Suggest(prefix string) []string {
	if prefix == "" {
		return nil
	}

	var s []string
	for _, tok := range h.ranked {
		if strings.HasPrefix(tok, prefix) {
			s = append(s, tok)
			if len(s) == maxSuggestions {
				break
			}
		}
	}
	return s
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		s := []prompt.Suggest{}
		word := in.GetWordBeforeCursor()

		for _, tok := range h.Suggest(word) {
			s = append(s, prompt.Suggest{Text: tok, Description: strconv.Itoa(h.total(tok))})
		}

		return s
	}
}

func (h *Handler) total(tok string) int {
	return h.Report.Src.Table[tok] + h.Report.Trg.Table[tok]
}

func retained(ok bool) string {
	if ok {
		return "in vocabulary"
	}
	return "out of vocabulary"
}

func known(ok bool) string {
	if ok {
		return "in reference"
	}
	return "not in reference"
}
