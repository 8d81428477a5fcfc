// Package strip removes markup from chunk fragments.
package strip

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmltext/internal/scoring"
	"github.com/mrjoshuak/htmltext/internal/tokenizer"
)

// DefaultLinkTag is the element whose text counts toward link density.
const DefaultLinkTag = "a"

// LinkStripper strips tags and measures the text nested in LinkTag.
type LinkStripper struct {
	LinkTag string
}

var _ scoring.Stripper = LinkStripper{}

// NewLinkStripper creates a LinkStripper. An empty tag falls back to DefaultLinkTag.
func NewLinkStripper(linkTag string) LinkStripper {
	if linkTag == "" {
		linkTag = DefaultLinkTag
	}
	return LinkStripper{LinkTag: strings.ToLower(linkTag)}
}

// Strip returns the text of markup with every tag removed, and the number of
// characters of that text that sit inside at least one LinkTag element.
func (s LinkStripper) Strip(markup string) (string, int, error) {
	h := &textCollector{linkTag: s.LinkTag, countLinks: true}
	if err := tokenizer.Stream(strings.NewReader(markup), h); err != nil {
		return "", 0, err
	}
	return h.b.String(), h.linkLength, nil
}

// PlainStripper strips tags without measuring links.
type PlainStripper struct{}

// StripText returns the text of markup with every tag removed.
func (PlainStripper) StripText(markup string) (string, error) {
	h := &textCollector{}
	if err := tokenizer.Stream(strings.NewReader(markup), h); err != nil {
		return "", err
	}
	return h.b.String(), nil
}

// textCollector concatenates text events and tracks link nesting depth.
type textCollector struct {
	b          strings.Builder
	linkTag    string
	countLinks bool
	linkDepth  int
	linkLength int
}

func (h *textCollector) StartTag(name string, _ []html.Attribute) error {
	if h.countLinks && name == h.linkTag {
		h.linkDepth++
	}
	return nil
}

func (h *textCollector) EndTag(name string) error {
	if h.countLinks && name == h.linkTag && h.linkDepth > 0 {
		h.linkDepth--
	}
	return nil
}

func (h *textCollector) Text(data string) error {
	if h.countLinks && h.linkDepth > 0 {
		h.linkLength += utf8.RuneCountInString(data)
	}
	h.b.WriteString(data)
	return nil
}
