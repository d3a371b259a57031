package web

import (
	"fmt"
	"net/http"
	"strings"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PanicRecovery turns a panic into a 500. API callers get the JSON error body, visitors a translated line of text.
func PanicRecovery(c *gin.Context) {
	gin.CustomRecoveryWithWriter(&recoveryWriter{
		logger: loggerFrom(c),
	}, recovered)(c)
}

func recovered(c *gin.Context, err any) {
	message, ok := err.(string)
	if !ok {
		message = fmt.Sprintf("panic recovered: %v", err)
	}

	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.ContentType() == gin.MIMEJSON {
		HandleError(c, http.StatusInternalServerError, message, nil)
		return
	}

	text := http.StatusText(http.StatusInternalServerError)
	if translator, ok := c.Get(translatorKey); ok {
		text = translator.(i18n.Translator).T("error_message")
	}

	loggerFrom(c).Error().Str("label", "panic").Msg(message)
	c.Abort()
	c.String(http.StatusInternalServerError, text)
}

type recoveryWriter struct {
	logger *zerolog.Logger
}

func (r *recoveryWriter) Write(p []byte) (n int, err error) {
	r.logger.Error().
		Str("label", "panic").
		Msg(string(p))

	return len(p), nil
}
