package remote

import (
	"context"

	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/caching"
	"bitbucket.org/realdreams/travel-site/internal/tools/converting"
)

// MaxPrice is the upper bound sent when the car search has none: the largest integer a
// float64 represents exactly.
const MaxPrice int64 = 9007199254740991

type CarQuery struct {
	Title    string `url:"title"`
	MinPrice *int64 `url:"min_price"`
	MaxPrice *int64 `url:"max_price"`
}

func (q CarQuery) Normalize() (CarQuery, error) {
	if q.Title == "" {
		return q, schema.NewValidationError("title")
	}

	if q.MinPrice == nil {
		q.MinPrice = converting.PointerToValue(int64(0))
	}
	if q.MaxPrice == nil {
		q.MaxPrice = converting.PointerToValue(MaxPrice)
	}

	return q, nil
}

func (c *Client) ListCars(ctx context.Context, page, pageSize int) (*schema.Page[schema.Car], error) {
	envelope, err := get[schema.Page[schema.Car]](ctx, c, "/cars", newPageQuery(page, pageSize))
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

func (c *Client) TopCars(ctx context.Context) ([]schema.Car, error) {
	cacheKey := caching.Key("cars", "top")

	var cached []schema.Car
	if c.cache.Fetch(ctx, cacheKey, &cached) {
		return cached, nil
	}

	envelope, err := get[[]schema.Car](ctx, c, "/cars/top", nil)
	if err != nil {
		return []schema.Car{}, err
	}

	if envelope.Data == nil || len(*envelope.Data) == 0 {
		return []schema.Car{}, nil
	}

	c.store(ctx, cacheKey, *envelope.Data)

	return *envelope.Data, nil
}

func (c *Client) FindCars(ctx context.Context, q CarQuery) ([]schema.Car, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	envelope, err := get[[]schema.Car](ctx, c, "/cars/find", q)
	if err != nil {
		return nil, err
	}

	if envelope.Data == nil {
		return nil, nil
	}

	return *envelope.Data, nil
}
