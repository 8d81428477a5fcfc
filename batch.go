package htmltext

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExtractAll extracts every document in docs, running up to concurrency
// extractions at a time (all at once when concurrency < 1). Results are in
// the order of docs. The first failure cancels the remaining work and is
// returned with the index of the document that caused it.
func ExtractAll(ctx context.Context, docs []string, concurrency int, opts ...Option) ([]*Result, error) {
	options := buildOptions(opts)
	ext := &textExtractor{options: options}

	results := make([]*Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := ext.ExtractFromHTML(doc, nil)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
