package synth

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SynthesizeMany runs Synthesize for each request with at most limit calls
// in flight. Every entry carries its own result or error; the call itself
// only fails when the context is cancelled before all entries finish.
func (c *Client) SynthesizeMany(ctx context.Context, reqs []Request, limit int) ([]BatchItem, error) {
	if limit < 1 {
		limit = 1
	}

	items := make([]BatchItem, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Synthesize(ctx, req)
			items[i] = BatchItem{Text: req.Text, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
