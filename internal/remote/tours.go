package remote

import (
	"context"

	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/caching"
)

// TourQuery is the search of the tours "find" endpoint.
type TourQuery struct {
	Address string `url:"address"`
	Start   string `url:"start"`
	End     string `url:"end"`
	People  int    `url:"people"`
}

// Normalize validates mandatory fields and applies defaults: end falls back to start, people to 1.
func (q TourQuery) Normalize() (TourQuery, error) {
	var missing []string
	if q.Address == "" {
		missing = append(missing, "address")
	}
	if q.Start == "" {
		missing = append(missing, "start")
	}
	if len(missing) > 0 {
		return q, schema.NewValidationError(missing...)
	}

	if q.End == "" {
		q.End = q.Start
	}
	if q.People <= 0 {
		q.People = 1
	}

	return q, nil
}

func (c *Client) ListTours(ctx context.Context, page, pageSize int) (*schema.Page[schema.Tour], error) {
	envelope, err := get[schema.Page[schema.Tour]](ctx, c, "/tours", newPageQuery(page, pageSize))
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

func (c *Client) TopTours(ctx context.Context) ([]schema.Tour, error) {
	cacheKey := caching.Key("tours", "top")

	var cached []schema.Tour
	if c.cache.Fetch(ctx, cacheKey, &cached) {
		return cached, nil
	}

	envelope, err := get[[]schema.Tour](ctx, c, "/tours/top", nil)
	if err != nil {
		return []schema.Tour{}, err
	}

	if envelope.Data == nil || len(*envelope.Data) == 0 {
		return []schema.Tour{}, nil
	}

	c.store(ctx, cacheKey, *envelope.Data)

	return *envelope.Data, nil
}

func (c *Client) GetTour(ctx context.Context, id int64) (schema.Envelope[schema.Tour], error) {
	if id <= 0 {
		return schema.Envelope[schema.Tour]{}, schema.ErrMissingID
	}

	return get[schema.Tour](ctx, c, "/tours/"+escapeID(id), nil)
}

func (c *Client) FindTours(ctx context.Context, q TourQuery) ([]schema.Tour, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	envelope, err := get[[]schema.Tour](ctx, c, "/tours/find", q)
	if err != nil {
		return nil, err
	}

	if envelope.Data == nil {
		return nil, nil
	}

	return *envelope.Data, nil
}

func (c *Client) store(ctx context.Context, key string, value any) {
	if c.cacheTTL <= 0 || !c.cache.Enabled() {
		return
	}

	if err := c.cache.Store(ctx, key, value, c.cacheTTL); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache response")
	}
}
