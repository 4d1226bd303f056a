package preview

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fountainhq/fountain/pkg/domain"
)

// Resolver resolves metadata for a single URL. *client.Client satisfies it.
type Resolver interface {
	ResolveMetadata(ctx context.Context, rawURL string) (domain.URLMetadata, error)
}

// maxConcurrentResolves bounds parallel metadata requests per draft.
const maxConcurrentResolves = 4

// ResolveAll resolves every URL concurrently and returns one Result per
// URL, in input order. Individual failures are recorded per URL rather than
// aborting the batch; only context cancellation stops early.
func ResolveAll(ctx context.Context, r Resolver, urls []string) []Result {
	results := make([]Result, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResolves)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{URL: u, Err: err}
				return nil
			}
			meta, err := r.ResolveMetadata(ctx, u)
			results[i] = Result{URL: u, Meta: meta, Err: err}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors
	return results
}
