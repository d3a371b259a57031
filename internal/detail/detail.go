package detail

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/slowlog"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	placeholderImage = "/mock-img.png"
	maxThumbs        = 4
	maxSuggestions   = 3

	routeParam    = "route"
	questionParam = "question"
	tabParam      = "tab"
	bookingParam  = "openBooking"
)

type Tab string

const (
	TabOverview Tab = "overview"
	TabRoute    Tab = "route"
	TabInclude  Tab = "include"
	TabQA       Tab = "qa"
)

var Tabs = []Tab{TabOverview, TabRoute, TabInclude, TabQA}

func parseTab(raw string) Tab {
	for _, tab := range Tabs {
		if string(tab) == raw {
			return tab
		}
	}
	return TabOverview
}

type TourSource interface {
	GetTour(ctx context.Context, id int64) (schema.Envelope[schema.Tour], error)
	TopTours(ctx context.Context) ([]schema.Tour, error)
}

type Gallery struct {
	Main   string
	Thumbs []string
}

type Page struct {
	Tour        schema.Tour
	Gallery     Gallery
	Tabs        []Tab
	ActiveTab   Tab
	Routes      []schema.TourRoute
	Questions   []schema.TourQuestion
	Suggestions []schema.Tour
	MapURL      string
	BookingOpen bool
	Route       Accordion
	Question    Accordion
}

// Compose fetches the tour and the top list concurrently. A failing top list only empties the
// suggestions; a missing tour is ErrNotFound and an unusable id ErrMissingID.
func Compose(ctx context.Context, source TourSource, id int64, values url.Values, log *zerolog.Logger) (Page, error) {
	if id <= 0 {
		return Page{}, schema.ErrMissingID
	}

	slowLog := slowlog.CreateLogger(log)
	defer slowLog.Track("detail.compose")()

	var (
		envelope schema.Envelope[schema.Tour]
		top      []schema.Tour
		topErr   error
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		envelope, err = source.GetTour(ctx, id)
		return err
	})
	g.Go(func() error {
		top, topErr = source.TopTours(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page{}, err
	}

	if topErr != nil {
		log.Warn().Err(topErr).Msg("failed to load suggestions")
	}

	if !envelope.Status || envelope.Data == nil {
		return Page{}, schema.ErrNotFound
	}

	tour := *envelope.Data
	page := Page{
		Tour:        tour,
		Gallery:     newGallery(tour.Images),
		Tabs:        Tabs,
		ActiveTab:   parseTab(values.Get(tabParam)),
		Routes:      sortedRoutes(tour.Routes),
		Questions:   tour.Questions,
		Suggestions: suggestions(top, tour.ID),
		MapURL:      mapURL(tour),
		BookingOpen: values.Get(bookingParam) != "",
		Route:       ParseAccordion(values.Get(routeParam)),
		Question:    ParseAccordion(values.Get(questionParam)),
	}

	return page, nil
}

func newGallery(images []schema.TourImage) Gallery {
	gallery := Gallery{Main: placeholderImage, Thumbs: []string{}}
	if len(images) == 0 {
		return gallery
	}

	if images[0].ImageURL != "" {
		gallery.Main = images[0].ImageURL
	}

	for _, image := range images[1:] {
		if len(gallery.Thumbs) == maxThumbs {
			break
		}
		gallery.Thumbs = append(gallery.Thumbs, image.ImageURL)
	}

	return gallery
}

// sortedRoutes orders a copy by day; the fetched tour stays untouched.
func sortedRoutes(routes []schema.TourRoute) []schema.TourRoute {
	sorted := make([]schema.TourRoute, len(routes))
	copy(sorted, routes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DayNumber < sorted[j].DayNumber
	})

	return sorted
}

func suggestions(top []schema.Tour, current int64) []schema.Tour {
	out := make([]schema.Tour, 0, maxSuggestions)
	for _, tour := range top {
		if len(out) == maxSuggestions {
			break
		}
		if tour.ID == current {
			continue
		}
		out = append(out, tour)
	}
	return out
}

func mapURL(tour schema.Tour) string {
	place := tour.Location
	if place == "" {
		place = tour.Address
	}
	return fmt.Sprintf("https://maps.google.com/maps?q=%s&output=embed", url.QueryEscape(place))
}

// Title is the heading place name.
func (p Page) Title() string {
	if p.Tour.Location != "" {
		return p.Tour.Location
	}
	return p.Tour.Address
}

func (p Page) ToggleRouteURL(id int64) string {
	route := p.Route
	route.Toggle(id)
	return p.url(TabRoute, route, p.Question, false)
}

func (p Page) ToggleQuestionURL(id int64) string {
	question := p.Question
	question.Toggle(id)
	return p.url(TabQA, p.Route, question, false)
}

func (p Page) TabURL(tab Tab) string {
	return p.url(tab, p.Route, p.Question, p.BookingOpen)
}

func (p Page) BookingURL() string {
	return p.url(p.ActiveTab, p.Route, p.Question, true) + "#booking"
}

func (p Page) url(tab Tab, route, question Accordion, booking bool) string {
	values := url.Values{}
	if tab != TabOverview {
		values.Set(tabParam, string(tab))
	}
	if v := route.value(); v != "" {
		values.Set(routeParam, v)
	}
	if v := question.value(); v != "" {
		values.Set(questionParam, v)
	}
	if booking {
		values.Set(bookingParam, "1")
	}

	path := fmt.Sprintf("/tour/%d", p.Tour.ID)
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

// IsNotFound reports whether err means the tour page has nothing to show.
func IsNotFound(err error) bool {
	return errors.Is(err, schema.ErrNotFound) || errors.Is(err, schema.ErrMissingID)
}
