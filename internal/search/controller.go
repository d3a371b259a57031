package search

import (
	"context"
	"errors"
	"net/url"

	"bitbucket.org/realdreams/travel-site/internal/remote"
	"bitbucket.org/realdreams/travel-site/internal/schema"
)

// ErrDiscarded marks a result that arrived after its request was abandoned.
var ErrDiscarded = errors.New("search result discarded")

type TourSource interface {
	ListTours(ctx context.Context, page, pageSize int) (*schema.Page[schema.Tour], error)
	FindTours(ctx context.Context, q remote.TourQuery) ([]schema.Tour, error)
}

type CarSource interface {
	ListCars(ctx context.Context, page, pageSize int) (*schema.Page[schema.Car], error)
	FindCars(ctx context.Context, q remote.CarQuery) ([]schema.Car, error)
}

type Outcome struct {
	URL    string
	Filter Filter
	Tab    schema.Tab
	Tours  []schema.Tour
	Cars   []schema.Car
}

type Controller struct {
	tours TourSource
	cars  CarSource
}

func NewController(tours TourSource, cars CarSource) *Controller {
	return &Controller{
		tours: tours,
		cars:  cars,
	}
}

// Submit produces the browse URL for f and runs the search of the active tab.
func (c *Controller) Submit(ctx context.Context, f Filter) (Outcome, error) {
	outcome := Outcome{
		URL:    f.URL(),
		Filter: f,
		Tab:    f.ActiveTab(),
	}

	var err error
	if outcome.Tab == schema.TabSecond {
		outcome.Cars, err = c.Cars(ctx, f)
	} else {
		outcome.Tours, err = c.Tours(ctx, f)
	}

	return outcome, err
}

// Reset clears every field and runs the unfiltered listing.
func (c *Controller) Reset(ctx context.Context) (Outcome, error) {
	return c.Submit(ctx, Filter{})
}

// Hydrate restores the filter from the URL before the first fetch.
func (c *Controller) Hydrate(ctx context.Context, values url.Values) (Filter, Outcome, error) {
	f := FromQuery(values)
	outcome, err := c.Submit(ctx, f)
	return f, outcome, err
}

func (c *Controller) Tours(ctx context.Context, f Filter) ([]schema.Tour, error) {
	request := f.TourRequest()

	var (
		tours []schema.Tour
		err   error
	)

	switch request.Kind {
	case KindFind:
		tours, err = c.tours.FindTours(ctx, request.Find)
	default:
		var page *schema.Page[schema.Tour]
		page, err = c.tours.ListTours(ctx, request.Page, request.PageSize)
		if page != nil {
			tours = page.Items
		}
	}

	if ctx.Err() != nil {
		return nil, ErrDiscarded
	}

	if err != nil {
		return nil, err
	}

	if tours == nil {
		tours = []schema.Tour{}
	}

	return tours, nil
}

func (c *Controller) Cars(ctx context.Context, f Filter) ([]schema.Car, error) {
	request := f.CarRequest()

	var (
		cars []schema.Car
		err  error
	)

	switch request.Kind {
	case KindFind:
		cars, err = c.cars.FindCars(ctx, request.Find)
	default:
		var page *schema.Page[schema.Car]
		page, err = c.cars.ListCars(ctx, request.Page, request.PageSize)
		if page != nil {
			cars = page.Items
		}
	}

	if ctx.Err() != nil {
		return nil, ErrDiscarded
	}

	if err != nil {
		return nil, err
	}

	if cars == nil {
		cars = []schema.Car{}
	}

	return cars, nil
}
