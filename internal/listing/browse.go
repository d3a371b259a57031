package listing

import (
	"context"
	"errors"
	"net/url"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/search"
	"bitbucket.org/realdreams/travel-site/internal/tools/slowlog"
	"github.com/rs/zerolog"
)

type Pane[T any] struct {
	Cards   []T
	Loaded  bool
	Error   string
	Message string
}

type BrowsePage struct {
	Filter search.Filter
	Tab    schema.Tab
	Tours  Pane[TourCard]
	Cars   Pane[CarCard]
}

// LoadBrowse always fills the tours pane; the cars pane is only fetched when it is the active tab.
func LoadBrowse(ctx context.Context, controller *search.Controller, values url.Values, tr i18n.Translator, log *zerolog.Logger) (BrowsePage, error) {
	f := search.FromQuery(values)
	page := BrowsePage{
		Filter: f,
		Tab:    f.ActiveTab(),
	}

	slowLog := slowlog.CreateLogger(log)

	stop := slowLog.Track("browse.tours")
	tours, err := controller.Tours(ctx, f)
	stop()

	switch {
	case errors.Is(err, search.ErrDiscarded):
		return page, err
	case err != nil:
		log.Error().Err(err).Msg("failed to load tours")
		page.Tours.Error = paneError(err, tr)
	default:
		page.Tours.Cards = NewTourCards(tours, false, tr)
		page.Tours.Loaded = true
		if len(tours) == 0 {
			page.Tours.Message = tr.T("no_tours_found")
		}
	}

	if page.Tab != schema.TabSecond {
		return page, nil
	}

	stop = slowLog.Track("browse.cars")
	cars, err := controller.Cars(ctx, f)
	stop()

	switch {
	case errors.Is(err, search.ErrDiscarded):
		return page, err
	case err != nil:
		log.Error().Err(err).Msg("failed to load cars")
		page.Cars.Error = paneError(err, tr)
	default:
		page.Cars.Cards = NewCarCards(cars, false)
		page.Cars.Loaded = true
		if len(cars) == 0 {
			page.Cars.Message = tr.T("no_cars_found")
		}
	}

	return page, nil
}

func paneError(err error, tr i18n.Translator) string {
	var apiErr *schema.APIError
	if errors.As(err, &apiErr) {
		return tr.T("server_error")
	}
	return tr.T("error_message")
}
