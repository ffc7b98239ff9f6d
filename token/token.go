// Package token implements the naive whitespace tokenizer used for corpus
// statistics. It does not normalize case nor collapse repeated separators.
package token

import (
	"strings"
	"unicode"
)

// Separator is the only token delimiter.
const Separator = " "

// Trim removes trailing whitespace, including the line terminator, from a
// raw corpus line. Leading whitespace is kept.
func Trim(raw string) string {
	return strings.TrimRightFunc(raw, unicode.IsSpace)
}

// Split splits a trimmed line on single spaces. Consecutive spaces yield
// empty tokens and an empty line yields one empty token; both are counted.
func Split(line string) []string {
	return strings.Split(line, Separator)
}

// Terminator removes the line terminator ("\n" or "\r\n") of a raw line and
// nothing else. The result is the line text kept for diagnostics.
func Terminator(raw string) string {
	raw = strings.TrimSuffix(raw, "\n")
	return strings.TrimSuffix(raw, "\r")
}
