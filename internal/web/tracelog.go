package web

import (
	"net/http"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TraceLog writes one line per request once every other handler finished. Asset requests trace at debug.
func TraceLog(c *gin.Context) {
	c.Next()

	logger := loggerFrom(c)
	startTime := c.MustGet(requestStartKey).(time.Time)

	var event *zerolog.Event
	switch {
	case c.Writer.Status() >= http.StatusInternalServerError:
		event = logger.Warn()
	case isAsset(c.Request.URL.Path):
		event = logger.Debug()
	default:
		event = logger.Info()
	}

	if translator, ok := c.Get(translatorKey); ok {
		event = event.Str("lang", string(translator.(i18n.Translator).Lang()))
	}

	event.
		Str("label", "trace").
		Str("method", c.Request.Method).
		Str("url", c.Request.URL.Path).
		Str("route", c.FullPath()).
		Int("code", c.Writer.Status()).
		Int("size", c.Writer.Size()).
		Float64("duration", CurrentTimeFunc().Sub(startTime).Seconds()).
		Msg("")
}
