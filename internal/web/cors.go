package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Cors answers preflight requests itself and decorates the actual ones. No origins means none are allowed.
func Cors(allowedOrigins []string) gin.HandlerFunc {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", "X-Correlation-Id"},
		MaxAge:         600,
	}
	if len(allowedOrigins) == 0 {
		options.AllowOriginFunc = func(string) bool { return false }
	}
	handler := cors.New(options)

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Abort()
		}
	}
}
