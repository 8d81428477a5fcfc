package extraction

import (
	"fmt"

	"github.com/mrjoshuak/htmltext/internal/errs"
	"github.com/mrjoshuak/htmltext/internal/prune"
	"github.com/mrjoshuak/htmltext/types"
)

// Validate checks options for values a Parser cannot work with and compiles
// the prune expressions. The returned Pruner is empty when none are set.
func Validate(opts types.ExtractionOptions) (*prune.Pruner, error) {
	invalid := func(format string, args ...any) error {
		return errs.WrapValidationError(errs.ErrInvalidOptions, "Validate", fmt.Sprintf(format, args...))
	}

	switch {
	case opts.LinkTag == "":
		return nil, invalid("link tag must not be empty")
	case opts.Punctuation == "":
		return nil, invalid("punctuation alphabet must not be empty")
	case opts.MaxBufferSize < 0:
		return nil, invalid("negative max buffer size %d", opts.MaxBufferSize)
	case opts.Timeout < 0:
		return nil, invalid("negative timeout %v", opts.Timeout)
	}

	switch opts.Tokenizer {
	case types.TokenizerTree:
	case types.TokenizerStream:
		if len(opts.RemoveSelectors) > 0 || len(opts.RemoveXPath) > 0 {
			return nil, invalid("selector and xpath pruning need the tree tokenizer")
		}
	default:
		return nil, invalid("unknown tokenizer mode %v", opts.Tokenizer)
	}

	return prune.New(opts.RemoveSelectors, opts.RemoveXPath)
}
