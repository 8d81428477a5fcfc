// Package extraction runs a document through segmentation, scoring and save
// chunk cleaning and exposes the outcome.
package extraction

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrjoshuak/htmltext/internal/errs"
	"github.com/mrjoshuak/htmltext/internal/prune"
	"github.com/mrjoshuak/htmltext/internal/scoring"
	"github.com/mrjoshuak/htmltext/internal/segmenter"
	"github.com/mrjoshuak/htmltext/internal/simplifiers"
	"github.com/mrjoshuak/htmltext/internal/strip"
	"github.com/mrjoshuak/htmltext/internal/tokenizer"
	"github.com/mrjoshuak/htmltext/types"
)

// scoredChunk is a content chunk together with the outcome of scoring it.
type scoredChunk struct {
	chunk *scoring.Chunk
	err   error
}

// Parser extracts main content and saved tags from one document at a time.
// Every Feed starts from a clean state. A Parser is not safe for concurrent
// use; give each goroutine its own.
type Parser struct {
	opts   types.ExtractionOptions
	log    zerolog.Logger
	pruner *prune.Pruner

	segmenter *segmenter.Segmenter
	scorer    *scoring.Scorer
	cleaner   *SaveChunkCleaner

	chunks []scoredChunk
	saved  map[string][]string
}

// NewParser validates opts and builds a Parser.
func NewParser(opts types.ExtractionOptions) (*Parser, error) {
	pruner, err := Validate(opts)
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	format := segmenter.FormatBare
	if opts.PreserveAttributes {
		format = segmenter.FormatWithAttributes
	}

	p := &Parser{
		opts:   opts,
		log:    log.With().Str("component", "extraction").Logger(),
		pruner: pruner,
		segmenter: segmenter.New(segmenter.Config{
			TagsToSave:   opts.TagsToSave,
			TagsToRemove: opts.TagsToRemove,
			Format:       format,
		}),
		scorer:  scoring.NewScorer(strip.NewLinkStripper(opts.LinkTag), opts.Punctuation),
		cleaner: NewSaveChunkCleaner(opts.NormalizeUnicode),
	}
	p.Reset()
	return p, nil
}

// Reset discards the results of the previous Feed.
func (p *Parser) Reset() {
	p.segmenter.Reset()
	p.chunks = nil
	p.saved = make(map[string][]string)
}

// Feed runs a full extraction pass over document. A malformed-input fault
// aborts the pass and leaves the Parser empty. A chunk that fails to score
// does not abort the pass; it is excluded from Content.
func (p *Parser) Feed(document string) error {
	p.Reset()

	if p.opts.MaxBufferSize > 0 && len(document) > p.opts.MaxBufferSize {
		return errs.WrapValidationError(errs.ErrDocumentLarge, "Feed",
			fmt.Sprintf("%d bytes (exceeds limit of %d)", len(document), p.opts.MaxBufferSize))
	}

	if err := p.segment(document); err != nil {
		p.Reset()
		return err
	}

	for i, markup := range p.segmenter.Chunks() {
		c := scoring.NewChunk(markup)
		err := p.scorer.Score(c)
		if err != nil {
			p.log.Warn().Err(err).Int("chunk", i).Msg("Chunk scoring failed, excluding it")
		}
		p.chunks = append(p.chunks, scoredChunk{chunk: c, err: err})
	}

	saved, err := p.cleaner.Clean(p.segmenter.SavedChunks())
	if err != nil {
		p.log.Warn().Err(err).Msg("Dropped saved tags that could not be stripped")
	}
	p.saved = saved

	p.log.Debug().
		Int("bytes", len(document)).
		Int("chunks", len(p.chunks)).
		Int("accepted", p.acceptedCount()).
		Int("saved_tags", len(p.saved)).
		Msg("Extraction pass complete")
	return nil
}

// FeedReader reads the whole of r and feeds it. The buffer limit is checked
// while reading so oversized input is not fully loaded.
func (p *Parser) FeedReader(r io.Reader) error {
	if p.opts.MaxBufferSize > 0 {
		r = io.LimitReader(r, int64(p.opts.MaxBufferSize)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		p.Reset()
		return errs.WrapParseError(err, "FeedReader", "failed to read document")
	}
	return p.Feed(string(data))
}

// segment drives the tokenizer into the segmenter.
func (p *Parser) segment(document string) error {
	var err error
	if p.opts.Tokenizer == types.TokenizerStream {
		err = tokenizer.Stream(strings.NewReader(document), p.segmenter)
	} else {
		err = p.walkTree(document)
	}
	if err != nil {
		if errs.IsSegmentationError(err) || errs.IsParseError(err) {
			return err
		}
		return errs.WrapParseError(err, "Feed", "failed to tokenize document")
	}
	return p.segmenter.Finish()
}

func (p *Parser) walkTree(document string) error {
	root, err := tokenizer.Parse(strings.NewReader(document))
	if err != nil {
		return errs.WrapParseError(err, "Feed", "failed to parse HTML document")
	}
	if removed := p.pruner.Prune(root); removed > 0 {
		p.log.Debug().Int("removed", removed).Msg("Pruned matched elements")
	}
	return tokenizer.Walk(root, p.segmenter)
}

func (p *Parser) accepted(sc scoredChunk) bool {
	return sc.err == nil && sc.chunk.Weighed() && sc.chunk.Weight() >= p.opts.MinAllowedWeight
}

func (p *Parser) acceptedCount() int {
	n := 0
	for _, sc := range p.chunks {
		if p.accepted(sc) {
			n++
		}
	}
	return n
}

func (p *Parser) normalize(text string) string {
	if p.opts.NormalizeUnicode {
		return simplifiers.NormalizeText(text)
	}
	return simplifiers.NormalizeWhitespace(text)
}

// Content returns the text of every accepted chunk, each whitespace
// normalized, joined by single spaces.
func (p *Parser) Content() string {
	parts := make([]string, 0, len(p.chunks))
	for _, sc := range p.chunks {
		if !p.accepted(sc) {
			continue
		}
		if text := p.normalize(sc.chunk.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// SavedTags returns a copy of the cleaned save map.
func (p *Parser) SavedTags() map[string][]string {
	out := make(map[string][]string, len(p.saved))
	for name, entries := range p.saved {
		out[name] = slices.Clone(entries)
	}
	return out
}

// SavedTagNames returns the saved tag names in sorted order.
func (p *Parser) SavedTagNames() []string {
	return slices.Sorted(maps.Keys(p.saved))
}

// Chunks reports every content chunk of the last pass in document order.
func (p *Parser) Chunks() []types.ChunkReport {
	reports := make([]types.ChunkReport, len(p.chunks))
	for i, sc := range p.chunks {
		c := sc.chunk
		reports[i] = types.ChunkReport{
			Markup:            c.Markup(),
			Text:              p.normalize(c.Text()),
			LengthWithTags:    c.LengthWithTags(),
			LengthWithoutTags: c.LengthWithoutTags(),
			LinkLength:        c.LinkLength(),
			PunctuationCount:  c.PunctuationCount(),
			Weight:            c.Weight(),
			Accepted:          p.accepted(sc),
			Failed:            sc.err != nil,
			Err:               sc.err,
		}
	}
	return reports
}

// Result packages the last pass. Chunk reports are included only when the
// options ask for them.
func (p *Parser) Result() *types.Result {
	result := &types.Result{
		Content:   p.Content(),
		SavedTags: p.SavedTags(),
	}
	if p.opts.IncludeChunks {
		result.Chunks = p.Chunks()
	}
	return result
}
