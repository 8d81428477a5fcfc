package strip

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmltext/internal/segmenter"
	"github.com/mrjoshuak/htmltext/internal/tokenizer"
)

// Cleaner rewrites markup with selected tags removed. Tags in Unwrap are
// dropped while their content is kept; tags in Drop are dropped together
// with everything inside them. Remaining tags keep their attributes.
type Cleaner struct {
	unwrap map[string]bool
	drop   map[string]bool
}

// NewCleaner creates a Cleaner for the given tag sets.
func NewCleaner(unwrap, drop []string) *Cleaner {
	return &Cleaner{unwrap: toSet(unwrap), drop: toSet(drop)}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return set
}

// Clean returns markup with the configured tags removed. Each call is an
// independent pass.
func (c *Cleaner) Clean(markup string) (string, error) {
	p := &cleanPass{Cleaner: c}
	if err := tokenizer.Stream(strings.NewReader(markup), p); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

type cleanPass struct {
	*Cleaner
	b         strings.Builder
	dropDepth int
	rawText   bool
}

func (p *cleanPass) StartTag(name string, attrs []html.Attribute) error {
	if p.drop[name] {
		p.dropDepth++
	}
	if p.dropDepth == 0 && !p.unwrap[name] {
		p.b.WriteString(segmenter.StartTagString(name, attrs, segmenter.FormatWithAttributes))
	}
	p.rawText = tokenizer.IsRawText(name)
	return nil
}

func (p *cleanPass) EndTag(name string) error {
	if p.dropDepth == 0 && !p.unwrap[name] && !tokenizer.IsVoid(name) {
		p.b.WriteString(segmenter.EndTagString(name))
	}
	if p.drop[name] && p.dropDepth > 0 {
		p.dropDepth--
	}
	p.rawText = false
	return nil
}

func (p *cleanPass) Text(data string) error {
	if p.dropDepth > 0 {
		return nil
	}
	if p.rawText {
		p.b.WriteString(data)
		return nil
	}
	p.b.WriteString(segmenter.EscapeText(data))
	return nil
}
