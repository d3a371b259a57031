package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"bitbucket.org/realdreams/travel-site/internal/booking"
	"bitbucket.org/realdreams/travel-site/internal/detail"
	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/listing"
	"bitbucket.org/realdreams/travel-site/internal/search"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

const bookParam = "book"

func parseTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"seq": seq}).
		ParseFS(templateFiles, "templates/*.html")
}

// seq yields 0..n-1 for ranging a fixed number of placeholders.
func seq(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

type layout struct {
	Lang      i18n.Lang
	Languages []i18n.Lang
	Tr        i18n.Translator
	Path      string
	Notice    *booking.Notice
}

func newLayout(c *gin.Context) layout {
	tr := translatorFrom(c)

	return layout{
		Lang:      tr.Lang(),
		Languages: i18n.Supported,
		Tr:        tr,
		Path:      c.Request.URL.RequestURI(),
		Notice:    takeNotice(c, tr),
	}
}

// cardList is shared by the pages that show cards and the search form.
type cardList struct {
	layout
	Filter    search.Filter
	MinDate   string
	QuickDays []int
	BookCarID int64
	CarForm   booking.Form
}

// listingState is what a card page needs beyond the remote data: where it lives and which car form is open.
// A refused car booking renders the page the form was posted from with the entered form and its notice.
type listingState struct {
	Path      string
	BookCarID int64
	CarForm   booking.Form
	Notice    *booking.Notice
}

func requestListingState(c *gin.Context) listingState {
	return listingState{
		Path:      c.Request.URL.RequestURI(),
		BookCarID: parseID(c.Query(bookParam)),
		CarForm:   booking.NewForm(),
	}
}

// reopenedListingState reopens the car form with id on the page at returnTo.
func reopenedListingState(returnTo string, id int64, form booking.Form, notice booking.Notice) listingState {
	return listingState{
		Path:      withParam(returnTo, bookParam, strconv.FormatInt(id, 10)),
		BookCarID: id,
		CarForm:   form,
		Notice:    &notice,
	}
}

type tourCardView struct {
	Card listing.TourCard
	Tr   i18n.Translator
}

type carCardView struct {
	Card      listing.CarCard
	Tr        i18n.Translator
	BookCarID int64
	Form      booking.Form
	ReturnTo  string
	OpenURL   string
}

func (v cardList) TourCard(card listing.TourCard) tourCardView {
	return tourCardView{Card: card, Tr: v.Tr}
}

func (v cardList) CarCard(card listing.CarCard) carCardView {
	id := strconv.FormatInt(card.ID, 10)

	return carCardView{
		Card:      card,
		Tr:        v.Tr,
		BookCarID: v.BookCarID,
		Form:      v.CarForm,
		ReturnTo:  withParam(v.Path, bookParam, ""),
		OpenURL:   withParam(v.Path, bookParam, id) + "#car-" + id,
	}
}

type homeView struct {
	cardList
	Top listing.TopSection
}

type browseView struct {
	cardList
	Page listing.BrowsePage
}

type tourView struct {
	layout
	Page     detail.Page
	Form     booking.Form
	NotFound bool
	Error    string
}

// withParam sets key on the path's query, or removes it when value is empty.
func withParam(path, key, value string) string {
	parsed, err := url.Parse(path)
	if err != nil {
		return path
	}

	query := parsed.Query()
	if value == "" {
		query.Del(key)
	} else {
		query.Set(key, value)
	}
	parsed.RawQuery = query.Encode()
	parsed.Fragment = ""

	return parsed.String()
}

// safeReturn only accepts local absolute paths.
func safeReturn(raw, fallback string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.IsAbs() || parsed.Host != "" || len(raw) == 0 || raw[0] != '/' || (len(raw) > 1 && raw[1] == '/') {
		return fallback
	}
	return parsed.String()
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func tourPath(id int64) string {
	return fmt.Sprintf("/tour/%d", id)
}
