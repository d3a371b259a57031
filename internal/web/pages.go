package web

import (
	"errors"
	"net/http"
	"net/url"

	"bitbucket.org/realdreams/travel-site/internal/booking"
	"bitbucket.org/realdreams/travel-site/internal/detail"
	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/listing"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/search"
	"github.com/gin-gonic/gin"
)

func (h *handlers) newCardList(c *gin.Context, f search.Filter, state listingState) cardList {
	view := cardList{
		layout:    newLayout(c),
		Filter:    f,
		MinDate:   search.MinSearchDate(h.now()),
		QuickDays: search.QuickDays,
		BookCarID: state.BookCarID,
		CarForm:   state.CarForm,
	}
	view.Path = state.Path
	if state.Notice != nil {
		translated := state.Notice.Translate(view.Tr)
		view.Notice = &translated
	}

	return view
}

func (h *handlers) home(c *gin.Context) {
	h.renderHome(c, http.StatusOK, requestListingState(c))
}

func (h *handlers) renderHome(c *gin.Context, status int, state listingState) {
	log := loggerFrom(c)
	prefs := preferencesFrom(c)

	view := homeView{
		cardList: h.newCardList(c, search.Filter{}, state),
	}
	view.Top = listing.LoadTop(c.Request.Context(), h.client(c), prefs.Category(), view.Tr, log)

	c.HTML(status, "home.html", view)
}

func (h *handlers) browse(c *gin.Context) {
	h.renderBrowse(c, http.StatusOK, c.Request.URL.Query(), requestListingState(c))
}

// renderBrowse renders the search page. Without an explicit tab the visitor's preferred category opens first.
func (h *handlers) renderBrowse(c *gin.Context, status int, values url.Values, state listingState) {
	log := loggerFrom(c)
	prefs := preferencesFrom(c)

	if values.Get("show") == "" {
		values.Set("show", string(prefs.Category().Tab()))
	}

	view := browseView{
		cardList: h.newCardList(c, search.FromQuery(values), state),
	}

	remoteClient := h.client(c)
	page, err := listing.LoadBrowse(c.Request.Context(), search.NewController(remoteClient, remoteClient), values, view.Tr, log)
	if errors.Is(err, search.ErrDiscarded) {
		log.Debug().Msg("browse request cancelled")
		c.Abort()
		return
	}
	view.Page = page

	c.HTML(status, "browse.html", view)
}

// reopenCarForm renders the listing at returnTo again with the car form open and filled in.
func (h *handlers) reopenCarForm(c *gin.Context, status int, returnTo string, id int64, form booking.Form, notice booking.Notice) {
	state := reopenedListingState(returnTo, id, form, notice)

	target, err := url.Parse(returnTo)
	if err == nil && target.Path == "/browse" {
		h.renderBrowse(c, status, target.Query(), state)
		return
	}

	h.renderHome(c, status, state)
}

func (h *handlers) tour(c *gin.Context) {
	h.renderTour(c, http.StatusOK, booking.NewForm(), nil)
}

func (h *handlers) renderTour(c *gin.Context, status int, form booking.Form, notice *booking.Notice) {
	log := loggerFrom(c)

	view := tourView{
		layout: newLayout(c),
		Form:   form,
	}
	if notice != nil {
		translated := notice.Translate(view.Tr)
		view.Notice = &translated
	}

	page, err := detail.Compose(c.Request.Context(), h.client(c), parseID(c.Param("id")), c.Request.URL.Query(), log)
	switch {
	case detail.IsNotFound(err):
		view.NotFound = true
		c.HTML(http.StatusNotFound, "tour.html", view)
		return
	case err != nil:
		log.Error().Err(err).Msg("failed to compose tour page")
		view.Error = view.Tr.T("server_error")
		c.HTML(http.StatusBadGateway, "tour.html", view)
		return
	}

	view.Page = page
	if view.Notice != nil && view.Notice.Kind == booking.Failure {
		view.Page.BookingOpen = true
	}

	c.HTML(status, "tour.html", view)
}

func (h *handlers) submitSearch(c *gin.Context) {
	_ = c.Request.ParseForm()

	f := search.FromQuery(c.Request.PostForm)
	if days := int(parseID(c.PostForm("quick"))); days > 0 {
		f.Start, f.End = search.QuickRange(f.Start, days, h.now())
	}

	c.Redirect(http.StatusSeeOther, f.URL())
}

func (h *handlers) resetSearch(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, search.Filter{}.URL())
}

// switchTab persists the chosen pane as the visitor's browse preference.
func (h *handlers) switchTab(c *gin.Context) {
	_ = c.Request.ParseForm()

	f := search.FromQuery(c.Request.PostForm)
	f.Show = f.ActiveTab()

	if err := preferencesFrom(c).SetCategory(c.Request.Context(), f.Show.Category()); err != nil {
		loggerFrom(c).Warn().Err(err).Msg("failed to store browse preference")
	}

	c.Redirect(http.StatusSeeOther, f.URL())
}

func (h *handlers) selectTop(c *gin.Context) {
	var section listing.TopSection

	category := schema.Category(c.PostForm("category"))
	if err := section.Select(c.Request.Context(), preferencesFrom(c), category); err != nil {
		loggerFrom(c).Warn().Err(err).Str("category", string(category)).Msg("failed to select top category")
	}

	c.Redirect(http.StatusSeeOther, "/#top")
}

func (h *handlers) selectLanguage(c *gin.Context) {
	returnTo := safeReturn(c.PostForm("return_to"), "/")

	lang, ok := i18n.Parse(c.PostForm("language"))
	if ok {
		if err := preferencesFrom(c).SetLanguage(c.Request.Context(), lang); err != nil {
			loggerFrom(c).Warn().Err(err).Msg("failed to store language")
		}
	}

	c.Redirect(http.StatusSeeOther, returnTo)
}

// bookTour re-renders the page on failure so the visitor keeps what they typed.
func (h *handlers) bookTour(c *gin.Context) {
	id := parseID(c.Param("id"))

	flow := booking.NewFlow(booking.KindTour, id, loggerFrom(c))
	flow.Open()
	_ = c.ShouldBind(&flow.Form)

	result := flow.Submit(c.Request.Context(), h.submitter(c), preferencesFrom(c).Category())
	if result.Success {
		flashNotice(c, result.Notice)
		c.Redirect(http.StatusSeeOther, tourPath(id))
		return
	}

	h.renderTour(c, http.StatusOK, flow.Form, &result.Notice)
}

// bookCar answers from the listing the form was posted on; a failure reopens the same form with what was typed.
func (h *handlers) bookCar(c *gin.Context) {
	id := parseID(c.Param("id"))
	returnTo := safeReturn(c.PostForm("return_to"), "/browse?show=second")

	flow := booking.NewFlow(booking.KindCar, id, loggerFrom(c))
	flow.Open()
	_ = c.ShouldBind(&flow.Form)

	result := flow.Submit(c.Request.Context(), h.submitter(c), preferencesFrom(c).Category())
	if result.Success {
		flashNotice(c, result.Notice)
		c.Redirect(http.StatusSeeOther, result.Redirect)
		return
	}

	h.reopenCarForm(c, http.StatusOK, returnTo, id, flow.Form, result.Notice)
}

// refuseTourBooking answers a throttled tour form with the page and the form as it was posted.
func (h *handlers) refuseTourBooking(c *gin.Context, notice booking.Notice) {
	form := booking.NewForm()
	_ = c.ShouldBind(&form)

	h.renderTour(c, http.StatusTooManyRequests, form, &notice)
}

func (h *handlers) refuseCarBooking(c *gin.Context, notice booking.Notice) {
	form := booking.NewForm()
	_ = c.ShouldBind(&form)

	returnTo := safeReturn(c.PostForm("return_to"), "/browse?show=second")
	h.reopenCarForm(c, http.StatusTooManyRequests, returnTo, parseID(c.Param("id")), form, notice)
}
