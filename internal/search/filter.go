package search

import (
	"net/url"
	"strconv"
	"strings"

	"bitbucket.org/realdreams/travel-site/internal/remote"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"github.com/google/go-querystring/query"
)

const (
	tourPageSize = 10
	carPageSize  = 12
)

// Filter is the search state shared by the home hero and the browse page. It lives in the URL.
type Filter struct {
	Address  string     `url:"address,omitempty"`
	Start    string     `url:"start,omitempty"`
	End      string     `url:"end,omitempty"`
	Adults   int        `url:"people,omitempty"`
	Children int        `url:"children,omitempty"`
	MinPrice *int64     `url:"min_price,omitempty"`
	MaxPrice *int64     `url:"max_price,omitempty"`
	Show     schema.Tab `url:"show,omitempty"`
}

func FromQuery(values url.Values) Filter {
	f := Filter{
		Address:  strings.TrimSpace(values.Get("address")),
		Start:    strings.TrimSpace(values.Get("start")),
		End:      strings.TrimSpace(values.Get("end")),
		MinPrice: parsePrice(values.Get("min_price")),
		MaxPrice: parsePrice(values.Get("max_price")),
	}

	if adults, err := strconv.Atoi(values.Get("people")); err == nil && adults > 0 {
		f.Adults = ClampAdults(adults)
	}
	if children, err := strconv.Atoi(values.Get("children")); err == nil && children > 0 {
		f.Children = ClampChildren(children)
	}
	if show := values.Get("show"); show != "" {
		f.Show = schema.ParseTab(show)
	}

	return f
}

func parsePrice(raw string) *int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

// Values writes only the populated fields.
func (f Filter) Values() url.Values {
	values, err := query.Values(f)
	if err != nil {
		return url.Values{}
	}
	return values
}

// URL is the browse location reproducing this filter.
func (f Filter) URL() string {
	encoded := f.Values().Encode()
	if encoded == "" {
		return "/browse"
	}
	return "/browse?" + encoded
}

func (f Filter) ActiveTab() schema.Tab {
	return schema.ParseTab(string(f.Show))
}

func (f Filter) Travelers() int {
	if total := f.Adults + f.Children; total > 0 {
		return total
	}
	return 1
}

type Kind int

const (
	KindList Kind = iota
	KindFind
)

type TourRequest struct {
	Kind     Kind
	Find     remote.TourQuery
	Page     int
	PageSize int
}

type CarRequest struct {
	Kind     Kind
	Find     remote.CarQuery
	Page     int
	PageSize int
}

// TourRequest searches when both address and start are known, otherwise lists the first page.
func (f Filter) TourRequest() TourRequest {
	if f.Address == "" || f.Start == "" {
		return TourRequest{Kind: KindList, Page: 1, PageSize: tourPageSize}
	}

	end := f.End
	if end == "" {
		end = f.Start
	}

	return TourRequest{
		Kind: KindFind,
		Find: remote.TourQuery{
			Address: f.Address,
			Start:   f.Start,
			End:     end,
			People:  f.Travelers(),
		},
	}
}

// CarRequest searches by title when an address is typed, otherwise lists the first page.
func (f Filter) CarRequest() CarRequest {
	if f.Address == "" {
		return CarRequest{Kind: KindList, Page: 1, PageSize: carPageSize}
	}

	return CarRequest{
		Kind: KindFind,
		Find: remote.CarQuery{
			Title:    f.Address,
			MinPrice: f.MinPrice,
			MaxPrice: f.MaxPrice,
		},
	}
}
