package command

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Join runs fns concurrently and waits for all of them. The first error
// cancels the context passed to the others and is returned.
func Join(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			return fn(ctx)
		})
	}
	return g.Wait()
}

// Each calls fn for every index in [0, n) with at most limit calls in
// flight. limit <= 0 means no limit. The first error cancels the rest.
func Each(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range n {
		g.Go(func() error {
			return fn(ctx, i)
		})
	}
	return g.Wait()
}
