package grouping

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type RequestManager interface {
	HandleRequest(context.Context, func() (*Response, error)) (*Response, error)
}

type MiddlewareOptions struct {
	CreateManager func(
		redis *redis.Client,
		log *zerolog.Logger,
		cacheKey string,
	) RequestManager
	RedisClient *redis.Client
	// CacheKey groups requests answering identically; an empty key skips grouping.
	CacheKey func(c *gin.Context) string
	// HandleError answers when neither the handler nor the cache produced a response.
	HandleError func(c *gin.Context, code int, message string, err error)
}

// Middleware lets one of several identical concurrent requests reach the handler; the others wait
// for its stored answer. Without redis every request passes through.
func Middleware(o MiddlewareOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if o.RedisClient == nil {
			c.Next()
			return
		}

		cacheKey := o.CacheKey(c)
		if cacheKey == "" {
			c.Next()
			return
		}

		log := c.MustGet("logger").(*zerolog.Logger)
		groupingManager := o.CreateManager(o.RedisClient, log, cacheKey)

		requester := func() (*Response, error) {
			bodyWriter := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
			c.Writer = bodyWriter

			c.Next()

			return &Response{
				Code:    c.Writer.Status(),
				Body:    bodyWriter.body.String(),
				Headers: bodyWriter.Header(),
			}, c.Err()
		}

		response, err := groupingManager.HandleRequest(c.Request.Context(), requester)

		if !c.Writer.Written() {
			if err != nil {
				o.HandleError(c, http.StatusBadGateway, "Error requesting search", err)
				return
			}

			for key, values := range response.Headers {
				if c.Writer.Header().Get(key) != "" {
					continue
				}
				for _, value := range values {
					c.Writer.Header().Add(key, value)
				}
			}

			c.Data(response.Code, gin.MIMEJSON, []byte(response.Body))
		}

		c.Abort()
	}
}
