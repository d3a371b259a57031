package web

import (
	"errors"
	"net/http"

	"bitbucket.org/realdreams/travel-site/internal/booking"
	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/search"
	"github.com/gin-gonic/gin"
)

type tourBookingRequest struct {
	TourID int64 `json:"tour_id"`
	booking.Form
}

type carBookingRequest struct {
	CarID int64 `json:"car_id"`
	booking.Form
}

type preferencesResponse struct {
	Language i18n.Lang       `json:"language"`
	Category schema.Category `json:"category"`
}

type searchResponse struct {
	URL   string        `json:"url"`
	Tab   schema.Tab    `json:"tab"`
	Tours []schema.Tour `json:"tours"`
	Cars  []schema.Car  `json:"cars"`
}

func (h *handlers) apiBookTour(c *gin.Context) {
	var request tourBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		HandleError(c, http.StatusBadRequest, "Failed to bind booking", err)
		return
	}

	h.answerBooking(c, booking.KindTour, request.TourID, request.Form)
}

func (h *handlers) apiBookCar(c *gin.Context) {
	var request carBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		HandleError(c, http.StatusBadRequest, "Failed to bind booking", err)
		return
	}

	h.answerBooking(c, booking.KindCar, request.CarID, request.Form)
}

// answerBooking reports a refused booking as 200; only an unreachable remote is a 502.
func (h *handlers) answerBooking(c *gin.Context, kind booking.Kind, id int64, form booking.Form) {
	flow := booking.NewFlow(kind, id, loggerFrom(c))
	flow.Open()
	flow.Form = form

	result := flow.Submit(c.Request.Context(), h.submitter(c), preferencesFrom(c).Category())
	result.Notice = result.Notice.Translate(translatorFrom(c))

	code := http.StatusOK
	if result.Notice.Key == "server_error" {
		code = http.StatusBadGateway
	}

	c.JSON(code, result)
}

func (h *handlers) apiSetLanguage(c *gin.Context) {
	var request struct {
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		HandleError(c, http.StatusBadRequest, "Failed to bind language", err)
		return
	}

	prefs := preferencesFrom(c)

	lang, ok := i18n.Parse(request.Language)
	if !ok {
		HandleError(c, http.StatusBadRequest, "Unsupported language", schema.ErrInvalidPreference)
		return
	}

	if err := prefs.SetLanguage(c.Request.Context(), lang); err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to store language", err)
		return
	}

	c.JSON(http.StatusOK, preferencesResponse{Language: prefs.Language(), Category: prefs.Category()})
}

func (h *handlers) apiSetCategory(c *gin.Context) {
	var request struct {
		Category schema.Category `json:"category"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		HandleError(c, http.StatusBadRequest, "Failed to bind category", err)
		return
	}

	prefs := preferencesFrom(c)

	err := prefs.SetCategory(c.Request.Context(), request.Category)
	switch {
	case errors.Is(err, schema.ErrInvalidPreference):
		HandleError(c, http.StatusBadRequest, "Unsupported category", err)
		return
	case err != nil:
		HandleError(c, http.StatusInternalServerError, "Failed to store category", err)
		return
	}

	c.JSON(http.StatusOK, preferencesResponse{Language: prefs.Language(), Category: prefs.Category()})
}

func (h *handlers) apiSearch(c *gin.Context) {
	remoteClient := h.client(c)
	controller := search.NewController(remoteClient, remoteClient)

	outcome, err := controller.Submit(c.Request.Context(), search.FromQuery(c.Request.URL.Query()))
	if errors.Is(err, search.ErrDiscarded) {
		c.Abort()
		return
	}

	var apiErr *schema.APIError
	switch {
	case errors.As(err, &apiErr):
		HandleError(c, http.StatusBadGateway, "Remote service unavailable", err)
		return
	case err != nil:
		HandleError(c, http.StatusBadRequest, "Search failed", err)
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		URL:   outcome.URL,
		Tab:   outcome.Tab,
		Tours: outcome.Tours,
		Cars:  outcome.Cars,
	})
}
