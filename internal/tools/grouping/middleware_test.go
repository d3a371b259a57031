package grouping_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/realdreams/travel-site/internal/tools/grouping"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type groupingManagerMock struct {
	handleRequestMock func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error)
}

func (m *groupingManagerMock) HandleRequest(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
	return m.handleRequestMock(ctx, requester)
}

func newRouter(log *zerolog.Logger, options grouping.MiddlewareOptions, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("logger", log)
	})
	router.GET("/api/search", grouping.Middleware(options), handler)
	return router
}

func cacheKey(c *gin.Context) string {
	return "search:" + c.Request.URL.RawQuery
}

func handleError(c *gin.Context, code int, message string, err error) {
	c.AbortWithStatusJSON(code, gin.H{"code": code, "message": message})
}

func TestGroupingMiddleware(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should return the response from the next handler", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()

		createManager := func(redis *redis.Client, log *zerolog.Logger, key string) grouping.RequestManager {
			assert.Equal(t, "search:address=Samarkand", key)

			return &groupingManagerMock{
				handleRequestMock: func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
					response, err := requester()
					assert.NoError(t, err)
					assert.Equal(t, `{"tab":"first"}`, response.Body)
					return response, nil
				},
			}
		}

		router := newRouter(&log, grouping.MiddlewareOptions{
			CreateManager: createManager,
			RedisClient:   redisClient,
			CacheKey:      cacheKey,
			HandleError:   handleError,
		}, func(c *gin.Context) {
			c.Data(http.StatusOK, gin.MIMEJSON, []byte(`{"tab":"first"}`))
		})

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/search?address=Samarkand", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, `{"tab":"first"}`, response.Body.String())
	})

	t.Run("should provide from manager and not call the next handler", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()

		createManager := func(redis *redis.Client, log *zerolog.Logger, key string) grouping.RequestManager {
			return &groupingManagerMock{
				handleRequestMock: func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
					return &grouping.Response{
						Code:    http.StatusOK,
						Body:    "response from cache",
						Headers: map[string][]string{"X-Grouping-Hit": {"hit"}},
					}, nil
				},
			}
		}

		router := newRouter(&log, grouping.MiddlewareOptions{
			CreateManager: createManager,
			RedisClient:   redisClient,
			CacheKey:      cacheKey,
			HandleError:   handleError,
		}, func(c *gin.Context) {
			assert.Fail(t, "Should not call the remote service")
		})

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "response from cache", response.Body.String())
		assert.Equal(t, "hit", response.Header().Get("X-Grouping-Hit"))
	})

	t.Run("should answer with an error when nothing was written", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()

		createManager := func(redis *redis.Client, log *zerolog.Logger, key string) grouping.RequestManager {
			return &groupingManagerMock{
				handleRequestMock: func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
					return nil, errors.New("lock lost")
				},
			}
		}

		router := newRouter(&log, grouping.MiddlewareOptions{
			CreateManager: createManager,
			RedisClient:   redisClient,
			CacheKey:      cacheKey,
			HandleError:   handleError,
		}, func(c *gin.Context) {})

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadGateway, response.Code)
	})

	t.Run("should pass through without redis", func(t *testing.T) {
		router := newRouter(&log, grouping.MiddlewareOptions{
			CreateManager: func(*redis.Client, *zerolog.Logger, string) grouping.RequestManager {
				assert.Fail(t, "Should not group without redis")
				return nil
			},
			CacheKey:    cacheKey,
			HandleError: handleError,
		}, func(c *gin.Context) {
			c.String(http.StatusOK, "direct")
		})

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "direct", response.Body.String())
	})
}
