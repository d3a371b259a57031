package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RegisterLogger stores a request scoped logger in the gin context and in the request context, so the remote
// client and the booking flow log under the same correlation id.
func RegisterLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := logger.
			With().
			Str("correlationId", c.MustGet(correlationIdKey).(string)).
			Str("ip", c.ClientIP())

		if referer := c.Request.Referer(); referer != "" {
			fields = fields.Str("referer", referer)
		}

		requestLogger := fields.Logger()

		c.Set(loggerKey, &requestLogger)
		c.Request = c.Request.WithContext(requestLogger.WithContext(c.Request.Context()))
	}
}
