package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HandleError aborts the request with a JSON error body and logs it on the request logger.
func HandleError(c *gin.Context, code int, message string, err error) {
	log := loggerFrom(c)

	event := log.Warn()
	if code >= 500 {
		event = log.Error()
	}
	event.
		Err(err).
		Int("code", code).
		Msg(message)

	response := errorResponse{
		Code:    code,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}

	c.AbortWithStatusJSON(code, response)
}

func loggerFrom(c *gin.Context) *zerolog.Logger {
	if log, ok := c.Get(loggerKey); ok {
		return log.(*zerolog.Logger)
	}

	nop := zerolog.Nop()
	return &nop
}
