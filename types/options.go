// Package types provides the core data structures for the htmltext library.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TokenizerMode selects how a document is turned into tag and text events.
type TokenizerMode int

const (
	// TokenizerTree parses the document into an HTML5 tree first, which
	// repairs malformed nesting and allows selector and XPath pruning.
	TokenizerTree TokenizerMode = iota
	// TokenizerStream feeds raw tokens straight to the segmenter. Malformed
	// nesting is reported as an error instead of being repaired.
	TokenizerStream
)

// String returns the mode name used in configuration files and flags.
func (m TokenizerMode) String() string {
	switch m {
	case TokenizerTree:
		return "tree"
	case TokenizerStream:
		return "stream"
	default:
		return fmt.Sprintf("TokenizerMode(%d)", int(m))
	}
}

// ParseTokenizerMode parses "tree" or "stream". The empty string means tree.
func ParseTokenizerMode(s string) (TokenizerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tree":
		return TokenizerTree, nil
	case "stream":
		return TokenizerStream, nil
	default:
		return TokenizerTree, fmt.Errorf("unknown tokenizer mode %q", s)
	}
}

// ExtractionOptions configures the extraction process.
// It controls which elements are saved or removed, how chunks are weighed,
// optional pruning of the parsed tree, and limits on input size and time.
type ExtractionOptions struct {
	TagsToSave         []string        // Elements collected into the saved tag map
	TagsToRemove       []string        // Elements dropped together with their content
	LinkTag            string          // Element whose text counts toward link density
	Punctuation        string          // Punctuation alphabet used for weighting
	MinAllowedWeight   float64         // Chunks weighing less are left out of the content
	PreserveAttributes bool            // Keep attributes in chunk markup
	Tokenizer          TokenizerMode   // Tree or stream tokenization
	RemoveSelectors    []string        // CSS selectors pruned before segmentation (tree mode)
	RemoveXPath        []string        // XPath expressions pruned before segmentation (tree mode)
	NormalizeUnicode   bool            // Apply NFKC to content and saved text
	IncludeChunks      bool            // Attach per-chunk reports to the result
	MaxBufferSize      int             // Maximum document size in bytes, 0 for no limit
	Timeout            time.Duration   // Timeout for a single extraction, 0 for none
	Logger             *zerolog.Logger // Destination for diagnostics, nil discards them
}

// DefaultOptions returns the default extraction options.
// By default only <title> is saved, document head, scripts, styles and
// templates are removed, every chunk with a non-negative weight is kept,
// input is limited to 1MB and extraction times out after 30 seconds.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		TagsToSave:       []string{"title"},
		TagsToRemove:     []string{"head", "script", "style", "noscript", "template"},
		LinkTag:          "a",
		Punctuation:      ".,!?:;",
		MinAllowedWeight: 0,
		Tokenizer:        TokenizerTree,
		MaxBufferSize:    1024 * 1024, // 1MB
		Timeout:          time.Second * 30,
	}
}
