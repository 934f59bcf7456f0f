package slackapi

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fetchOne sends req and decodes the response into an entity with extract.
func fetchOne[T any](ctx context.Context, c *Client, id string, req Request, extract func(method, body string) (T, error)) (T, error) {
	body, err := c.send(ctx, id, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(req.Name, body)
}

// fetchMany fetches every id concurrently. The first failure cancels the rest
// and no partial result is returned. Results are zipped back by input position.
func fetchMany[T any](ctx context.Context, c *Client, ids []string, requestFor func(id string) Request, extract func(method, body string) (T, error)) (map[string]T, error) {
	results := make([]T, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			v, err := fetchOne(gctx, c, id, requestFor(id), extract)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]T, len(ids))
	for i, id := range ids {
		out[id] = results[i]
	}
	return out, nil
}
