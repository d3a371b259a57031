package web

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	requestStartKey  = "requestStartTime"
	correlationIdKey = "correlationId"
	loggerKey        = "logger"
)

// CurrentTimeFunc Current time. Can be mocked for testing.
var CurrentTimeFunc = time.Now

// StartRequest stamps the request start for the trace line. Everything but assets depends on the visitor's
// preferences and must not be stored by shared caches.
func StartRequest(c *gin.Context) {
	c.Set(requestStartKey, CurrentTimeFunc())

	if !isAsset(c.Request.URL.Path) {
		c.Header("Cache-Control", "private, no-store")
	}
}

func isAsset(path string) bool {
	return strings.HasPrefix(path, "/static/") || path == "/mock-img.png"
}
