package htmltext

import (
	"github.com/mrjoshuak/htmltext/internal/errs"
	"github.com/mrjoshuak/htmltext/internal/extraction"
	"github.com/mrjoshuak/htmltext/types"
)

// Result is the output of one extraction: the accepted content, the saved
// tag text and, when requested, a report per chunk.
type Result = types.Result

// ChunkReport describes one content chunk and how it was scored.
type ChunkReport = types.ChunkReport

// ExtractionOptions configures the extraction process.
type ExtractionOptions = types.ExtractionOptions

// TokenizerMode selects tree or stream tokenization.
type TokenizerMode = types.TokenizerMode

// Tokenizer modes.
const (
	TokenizerTree   = types.TokenizerTree
	TokenizerStream = types.TokenizerStream
)

// Parser is the stateful extractor behind every Extractor. See NewParser.
type Parser = extraction.Parser

// DefaultOptions returns the default extraction options.
// By default only <title> is saved, head, scripts, styles and templates are
// removed, every chunk is kept, input is limited to 1MB and extraction times
// out after 30 seconds.
func DefaultOptions() ExtractionOptions {
	return types.DefaultOptions()
}

// BuildInfo contains version and build information for the htmltext library.
type BuildInfo = types.BuildInfo

// GetBuildInfo returns the current version information for the htmltext library.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}

// Version is the current version of the htmltext library.
var Version = types.Version

// Name is the name of the htmltext library.
var Name = types.Name

// Errors returned by extraction. Use errors.Is to test for them.
var (
	ErrUnbalancedTag  = errs.ErrUnbalancedTag
	ErrOutOfSequence  = errs.ErrOutOfSequence
	ErrDocumentLarge  = errs.ErrDocumentLarge
	ErrInvalidOptions = errs.ErrInvalidOptions
	ErrTimeout        = errs.ErrTimeout
)
