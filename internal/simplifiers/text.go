// Package simplifiers holds the text normalization helpers used on chunk
// markup and extracted text.
package simplifiers

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var retainedChars = map[rune]bool{
	'\t': true,
	'\n': true,
	'\r': true,
	'\f': true,
}

// NormalizeUnicode normalizes text to NFKC form for consistent character representation
func NormalizeUnicode(text string) string {
	return norm.NFKC.String(text)
}

// NormalizeWhitespace replaces runs of Unicode whitespace with a single space
// and trims both ends. NormalizeWhitespace(NormalizeWhitespace(s)) ==
// NormalizeWhitespace(s) for every s.
func NormalizeWhitespace(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// StripControlChars removes Unicode control characters while retaining specific whitespace chars
func StripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if !unicode.IsControl(r) || retainedChars[r] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText strips control characters, applies NFKC and collapses whitespace.
func NormalizeText(text string) string {
	text = StripControlChars(text)
	text = NormalizeUnicode(text)
	text = NormalizeWhitespace(text)
	return text
}
