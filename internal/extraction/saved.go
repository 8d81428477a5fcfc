package extraction

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/htmltext/internal/simplifiers"
	"github.com/mrjoshuak/htmltext/internal/strip"
)

// SaveChunkCleaner turns save chunk markup into plain text.
type SaveChunkCleaner struct {
	stripper         strip.PlainStripper
	normalizeUnicode bool
}

// NewSaveChunkCleaner creates a cleaner. With normalizeUnicode set control
// characters are also stripped and the text is NFKC normalized.
func NewSaveChunkCleaner(normalizeUnicode bool) *SaveChunkCleaner {
	return &SaveChunkCleaner{normalizeUnicode: normalizeUnicode}
}

// Clean strips markup from every entry of saved. Entries that are empty after
// stripping are dropped and the order of the rest is kept. Every key of saved
// is present in the result, possibly with an empty list. Entries that fail to
// strip are dropped too and reported together in the returned error.
func (c *SaveChunkCleaner) Clean(saved map[string][]string) (map[string][]string, error) {
	cleaned := make(map[string][]string, len(saved))
	var failures []error

	for name, entries := range saved {
		kept := make([]string, 0, len(entries))
		for i, markup := range entries {
			text, err := c.stripper.StripText(markup)
			if err != nil {
				failures = append(failures, fmt.Errorf("%s[%d]: %w", name, i, err))
				continue
			}
			if c.normalizeUnicode {
				text = simplifiers.NormalizeText(text)
			} else {
				text = simplifiers.NormalizeWhitespace(text)
			}
			if text != "" {
				kept = append(kept, text)
			}
		}
		cleaned[name] = kept
	}
	return cleaned, errors.Join(failures...)
}
