package listing

import (
	"fmt"
	"strconv"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/schema"
)

const (
	PlaceholderImage    = "/mock-img.png"
	defaultTourTitle    = "Tour"
	defaultTransmission = "Auto"
	missingPrice        = "—"
)

type TourCard struct {
	ID          int64
	Title       string
	Price       string
	Description string
	About       string
	Image       string
	Days        string
	Location    string
	Badge       string
	Top         bool
	Href        string
}

type CarCard struct {
	ID           int64
	Title        string
	Price        string
	Description  string
	Image        string
	Seats        int
	Luggage      int
	Transmission string
	UnlimitedKm  bool
	Top          bool
}

// NewTourCard maps a tour to its card. The first card of a list carries the hot badge.
func NewTourCard(tour schema.Tour, index int, top bool, tr i18n.Translator) TourCard {
	card := TourCard{
		ID:          tour.ID,
		Title:       firstNonEmpty(tour.Address, tour.About, defaultTourTitle),
		Price:       missingPrice,
		Description: tour.About,
		About:       tour.History,
		Image:       PlaceholderImage,
		Location:    tour.Location,
		Top:         top,
		Href:        fmt.Sprintf("/tour/%d", tour.ID),
	}

	if tour.Price > 0 {
		card.Price = formatAmount(tour.Price)
		if !top && tour.Currency != "" {
			card.Price += " " + tour.Currency
		}
	}

	if len(tour.Images) > 0 && tour.Images[0].ImageURL != "" {
		card.Image = tour.Images[0].ImageURL
	}

	if tour.Days > 0 {
		card.Days = fmt.Sprintf("%d %s / %d %s", tour.Days, tr.T("days"), tour.Nights, tr.T("nights"))
	}

	if index == 0 {
		card.Badge = tr.T("hot_tours")
	}

	return card
}

func NewTourCards(tours []schema.Tour, top bool, tr i18n.Translator) []TourCard {
	cards := make([]TourCard, 0, len(tours))
	for i, tour := range tours {
		cards = append(cards, NewTourCard(tour, i, top, tr))
	}
	return cards
}

func NewCarCard(car schema.Car, top bool) CarCard {
	card := CarCard{
		ID:           car.ID,
		Title:        car.Title,
		Price:        formatAmount(car.PricePerDay),
		Description:  car.Description,
		Image:        PlaceholderImage,
		Seats:        car.Seats,
		Luggage:      car.Luggage,
		Transmission: firstNonEmpty(car.Transmission, defaultTransmission),
		UnlimitedKm:  car.UnlimitedKm,
		Top:          top,
	}

	if len(car.Images) > 0 && car.Images[0].ImageURL != "" {
		card.Image = car.Images[0].ImageURL
	}

	return card
}

func NewCarCards(cars []schema.Car, top bool) []CarCard {
	cards := make([]CarCard, 0, len(cars))
	for _, car := range cars {
		cards = append(cards, NewCarCard(car, top))
	}
	return cards
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
