package web

import (
	"net/http"
	"strings"

	"bitbucket.org/realdreams/travel-site/internal/booking"
	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"github.com/gin-gonic/gin"
)

const noticeCookie = "rd_notice"

var noticeKeys = map[string]bool{
	"success_message":   true,
	"error_message":     true,
	"server_error":      true,
	"too_many_requests": true,
}

// flashNotice keeps a notice for the page the visitor is redirected to.
func flashNotice(c *gin.Context, notice booking.Notice) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     noticeCookie,
		Value:    string(notice.Kind) + "." + notice.Key,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotice reads and clears the flashed notice.
func takeNotice(c *gin.Context, tr i18n.Translator) *booking.Notice {
	cookie, err := c.Request.Cookie(noticeCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:   noticeCookie,
		Path:   "/",
		MaxAge: -1,
	})

	kind, key, ok := strings.Cut(cookie.Value, ".")
	if !ok || !noticeKeys[key] {
		return nil
	}

	notice := booking.Notice{Kind: booking.Failure, Key: key}
	if booking.NoticeKind(kind) == booking.Success {
		notice.Kind = booking.Success
	}
	notice = notice.Translate(tr)

	return &notice
}
