package requesting_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/requesting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestErrors(t *testing.T) {
	t.Run("should hand back answered requests regardless of status", func(t *testing.T) {
		for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
			response, e := requesting.RequestErrors(&http.Response{StatusCode: code}, nil)
			assert.Nil(t, e)
			assert.Equal(t, code, response.StatusCode)
		}
	})

	t.Run("should classify timeouts", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(20 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer testServer.Close()

		client := &http.Client{Timeout: time.Millisecond}
		_, e := requesting.RequestErrors(client.Get(testServer.URL))

		require.NotNil(t, e)
		assert.Equal(t, schema.TimeoutError, e.Code)
	})

	t.Run("should classify connection errors", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := testServer.URL
		testServer.Close()

		_, e := requesting.RequestErrors(http.Get(url))

		require.NotNil(t, e)
		assert.Equal(t, schema.ConnectionError, e.Code)
		assert.True(t, len(e.Message) > 0)
	})
}

func TestInterceptorTransport(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should add headers and log the outgoing request", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "any", r.Header.Get("ngrok-skip-browser-warning"))
			w.WriteHeader(http.StatusTeapot)
		}))
		defer testServer.Close()

		client := &http.Client{
			Transport: &requesting.InterceptorTransport{
				Middlewares: []requesting.TransportMiddleware{
					requesting.NewLoggingTransportMiddleware(&log, "tours-api"),
					requesting.NewHeaderTransportMiddleware(http.Header{"ngrok-skip-browser-warning": {"any"}}),
				},
			},
		}

		request, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, testServer.URL+"/tours", http.NoBody)
		response, err := client.Do(request)

		require.NoError(t, err)
		assert.Equal(t, http.StatusTeapot, response.StatusCode)
		assert.Contains(t, out.String(), `"label":"outgoing-request"`)
		assert.Contains(t, out.String(), `"destination":"tours-api"`)
		assert.Contains(t, out.String(), `"code":418`)
	})
}
