package remote

import (
	"context"
	"encoding/json"

	"bitbucket.org/realdreams/travel-site/internal/schema"
)

// CreateTourBooking reports the service's status flag; false is a refusal, not an error.
func (c *Client) CreateTourBooking(ctx context.Context, booking schema.TourBooking) (bool, error) {
	envelope, err := post[json.RawMessage](ctx, c, "/bookings", booking)
	if err != nil {
		return false, err
	}

	return envelope.Status, nil
}

func (c *Client) CreateCarBooking(ctx context.Context, booking schema.CarBooking) (bool, error) {
	envelope, err := post[json.RawMessage](ctx, c, "/car-bookings", booking)
	if err != nil {
		return false, err
	}

	return envelope.Status, nil
}
