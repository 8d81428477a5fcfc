// Package htmltext extracts the main text content of HTML documents.
//
// Usage:
//
//	import "github.com/mrjoshuak/htmltext"
//
//	// Create extractor
//	extractor := htmltext.New()
//
//	// Extract from HTML
//	result, err := extractor.ExtractFromHTML(htmlString, nil)
//
//	// Use result data
//	fmt.Println(result.SavedTags["title"])
//	fmt.Println(result.Content)
package htmltext

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrjoshuak/htmltext/internal/errs"
	"github.com/mrjoshuak/htmltext/internal/extraction"
)

// Extractor defines the interface for content extraction.
// It provides methods to extract text content from HTML strings or io.Readers.
type Extractor interface {
	// ExtractFromHTML extracts content from an HTML string
	ExtractFromHTML(html string, options *ExtractionOptions) (*Result, error)

	// ExtractFromReader extracts content from an io.Reader
	ExtractFromReader(r io.Reader, options *ExtractionOptions) (*Result, error)
}

// Option represents a function that modifies ExtractionOptions.
// This follows the functional options pattern for configuring the extractor.
type Option func(*ExtractionOptions)

// WithTagsToSave sets the elements whose text is collected into
// Result.SavedTags, even inside removed regions.
func WithTagsToSave(tags ...string) Option {
	return func(o *ExtractionOptions) {
		o.TagsToSave = tags
	}
}

// WithTagsToRemove sets the elements dropped together with their content.
func WithTagsToRemove(tags ...string) Option {
	return func(o *ExtractionOptions) {
		o.TagsToRemove = tags
	}
}

// WithLinkTag sets the element whose text counts toward link density.
func WithLinkTag(tag string) Option {
	return func(o *ExtractionOptions) {
		o.LinkTag = tag
	}
}

// WithPunctuation sets the punctuation alphabet. Each character is counted
// separately; a character listed twice counts twice.
func WithPunctuation(marks string) Option {
	return func(o *ExtractionOptions) {
		o.Punctuation = marks
	}
}

// WithMinAllowedWeight sets the weight a chunk needs to be part of the content.
func WithMinAllowedWeight(weight float64) Option {
	return func(o *ExtractionOptions) {
		o.MinAllowedWeight = weight
	}
}

// WithPreserveAttributes keeps element attributes in chunk markup.
func WithPreserveAttributes(enable bool) Option {
	return func(o *ExtractionOptions) {
		o.PreserveAttributes = enable
	}
}

// WithTokenizer selects tree or stream tokenization.
// Stream mode skips building a tree but rejects malformed nesting.
func WithTokenizer(mode TokenizerMode) Option {
	return func(o *ExtractionOptions) {
		o.Tokenizer = mode
	}
}

// WithRemoveSelectors removes elements matching CSS selectors before chunking.
// Requires the tree tokenizer.
func WithRemoveSelectors(selectors ...string) Option {
	return func(o *ExtractionOptions) {
		o.RemoveSelectors = selectors
	}
}

// WithRemoveXPath removes elements matching XPath expressions before
// chunking. Requires the tree tokenizer.
func WithRemoveXPath(exprs ...string) Option {
	return func(o *ExtractionOptions) {
		o.RemoveXPath = exprs
	}
}

// WithNormalizeUnicode applies NFKC normalization to content and saved text.
func WithNormalizeUnicode(enable bool) Option {
	return func(o *ExtractionOptions) {
		o.NormalizeUnicode = enable
	}
}

// WithIncludeChunks attaches a report for every chunk to the result.
func WithIncludeChunks(enable bool) Option {
	return func(o *ExtractionOptions) {
		o.IncludeChunks = enable
	}
}

// WithMaxBufferSize sets the maximum document size in bytes.
// This limits the amount of memory used during extraction for very large documents.
func WithMaxBufferSize(size int) Option {
	return func(o *ExtractionOptions) {
		o.MaxBufferSize = size
	}
}

// WithTimeout sets the timeout duration for extraction.
// This prevents extraction from hanging indefinitely on problematic documents.
func WithTimeout(timeout time.Duration) Option {
	return func(o *ExtractionOptions) {
		o.Timeout = timeout
	}
}

// WithLogger sets the logger that receives extraction diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *ExtractionOptions) {
		o.Logger = &logger
	}
}

// textExtractor is the concrete implementation of the Extractor interface.
type textExtractor struct {
	options ExtractionOptions
}

type extractResult struct {
	result *Result
	err    error
}

// ExtractFromHTML extracts content from an HTML string.
// Every call uses a fresh parser, so an Extractor may be shared between
// goroutines. Nil options fall back to those given to New.
func (e *textExtractor) ExtractFromHTML(html string, options *ExtractionOptions) (*Result, error) {
	if options == nil {
		options = &e.options
	}

	if options.Timeout <= 0 {
		return extract(html, *options)
	}

	// Buffered so the worker can finish after a timeout without blocking
	resultCh := make(chan extractResult, 1)

	go func() {
		result, err := extract(html, *options)
		resultCh <- extractResult{result, err}
	}()

	// Wait for the result or timeout
	select {
	case r := <-resultCh:
		return r.result, r.err
	case <-time.After(options.Timeout):
		return nil, errs.WrapError(errs.ErrTimeout, errs.TimeoutError, "ExtractFromHTML",
			fmt.Sprintf("extraction timed out after %v", options.Timeout))
	}
}

// ExtractFromReader extracts content from an io.Reader.
// It reads the entire content from the reader and passes it to ExtractFromHTML.
func (e *textExtractor) ExtractFromReader(r io.Reader, options *ExtractionOptions) (*Result, error) {
	if options == nil {
		options = &e.options
	}

	if options.MaxBufferSize > 0 {
		r = io.LimitReader(r, int64(options.MaxBufferSize)+1)
	}
	html, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.WrapParseError(err, "ExtractFromReader", "failed to read document")
	}

	return e.ExtractFromHTML(string(html), options)
}

func extract(html string, options ExtractionOptions) (*Result, error) {
	p, err := extraction.NewParser(options)
	if err != nil {
		return nil, err
	}
	if err := p.Feed(html); err != nil {
		return nil, err
	}
	return p.Result(), nil
}

// New creates a new Extractor instance with the provided options.
// It returns an implementation of the Extractor interface that can be used
// to extract text content from HTML.
//
// Example:
//
//	extractor := htmltext.New(
//	    htmltext.WithTagsToSave("title", "h1"),
//	    htmltext.WithTimeout(time.Second*60),
//	)
func New(opts ...Option) Extractor {
	return &textExtractor{
		options: buildOptions(opts),
	}
}

func buildOptions(opts []Option) ExtractionOptions {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// NewParser creates a stateful Parser. The options are validated here, so
// Feed only fails on the document itself.
func NewParser(options ExtractionOptions) (*Parser, error) {
	return extraction.NewParser(options)
}
