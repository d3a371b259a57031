package web

import (
	"net/http"

	"bitbucket.org/realdreams/travel-site/internal/booking"
	"github.com/gin-gonic/gin"
)

// refusal answers a throttled form post in place of the booking handler.
type refusal func(c *gin.Context, notice booking.Notice)

// RateLimit guards booking submissions per client IP. JSON callers and routes without a refusal get a 429 error body.
func RateLimit(limiter *booking.Limiter, refuse refusal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(c.ClientIP()) {
			return
		}

		if refuse == nil || c.ContentType() == gin.MIMEJSON {
			HandleError(c, http.StatusTooManyRequests, translatorFrom(c).T("too_many_requests"), nil)
			return
		}

		loggerFrom(c).Warn().Str("ip", c.ClientIP()).Str("path", c.FullPath()).Msg("booking rate limit exceeded")
		c.Abort()
		refuse(c, booking.Notice{Kind: booking.Failure, Key: "too_many_requests"})
	}
}
