package token

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "a b a\n", []string{"a", "b", "a"}},
		{"crlf", "a b\r\n", []string{"a", "b"}},
		{"trailing spaces", "a b   \n", []string{"a", "b"}},
		{"double space", "a  b", []string{"a", "", "b"}},
		{"leading space", " a", []string{"", "a"}},
		{"empty line", "\n", []string{""}},
		{"tab is not a separator", "a\tb", []string{"a\tb"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(Trim(tc.raw))
			if !slices.Equal(got, tc.want) {
				t.Errorf("Split(Trim(%q)) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestTerminator(t *testing.T) {
	if got := Terminator("a b a\n"); got != "a b a" {
		t.Errorf("got %q", got)
	}
	if got := Terminator("a b \r\n"); got != "a b " {
		t.Errorf("got %q", got)
	}
	if got := Terminator("no newline"); got != "no newline" {
		t.Errorf("got %q", got)
	}
}

func FuzzSplit(f *testing.F) {
	f.Add("a b a")
	f.Add("")
	f.Add("  ")
	f.Add("\xff\xfe")
	f.Add("a\r\n")

	f.Fuzz(func(t *testing.T, raw string) {
		tokens := Split(Trim(raw))
		if len(tokens) == 0 {
			t.Fatalf("Split returned no tokens for %q", raw)
		}
		for _, tok := range tokens {
			for _, r := range tok {
				if r == ' ' {
					t.Fatalf("token %q contains a separator", tok)
				}
			}
		}
	})
}
