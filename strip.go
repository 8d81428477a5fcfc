package htmltext

import (
	"github.com/mrjoshuak/htmltext/internal/simplifiers"
	"github.com/mrjoshuak/htmltext/internal/strip"
)

// StripTags rewrites document without the elements named in unwrap, whose
// content is kept, and without the elements named in drop, which go together
// with everything inside them. Remaining elements keep their attributes.
func StripTags(document string, unwrap, drop []string) (string, error) {
	return strip.NewCleaner(unwrap, drop).Clean(document)
}

// StripText returns the text of a markup fragment with every tag removed.
func StripText(markup string) (string, error) {
	return strip.PlainStripper{}.StripText(markup)
}

// NormalizeString collapses every run of whitespace in s to a single space
// and trims both ends.
func NormalizeString(s string) string {
	return simplifiers.NormalizeWhitespace(s)
}
