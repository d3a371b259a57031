package remote_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/remote"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/caching"
	"bitbucket.org/realdreams/travel-site/internal/tools/client"
	"bitbucket.org/realdreams/travel-site/internal/tools/converting"
	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	content, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return content
}

func newTestClient(url string, cache *caching.Cacher) *remote.Client {
	log := zerolog.New(&bytes.Buffer{})
	return remote.New(
		&log,
		cache,
		time.Minute,
		client.WithBaseURL(url),
		client.WithTimeout(time.Second),
		client.WithHeader("ngrok-skip-browser-warning: any"),
	)
}

func TestTours(t *testing.T) {
	ctx := context.Background()

	var handlerFunc http.HandlerFunc
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "any", r.Header.Get("ngrok-skip-browser-warning"))
		handlerFunc(w, r)
	}))
	defer testServer.Close()

	api := newTestClient(testServer.URL, caching.NewRedisCache(nil))

	t.Run("should list tours with default paging", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tours?page=1&page_size=10", r.RequestURI)
			w.Write(fixture(t, "tours_page.json"))
		}

		page, err := api.ListTours(ctx, 0, 0)

		require.NoError(t, err)
		require.NotNil(t, page)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, "Samarkand", page.Items[0].Address)
	})

	t.Run("should return nil page when the envelope has no data", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"status":false,"message":"db down"}`))
		}

		page, err := api.ListTours(ctx, 2, 5)

		assert.NoError(t, err)
		assert.Nil(t, page)
	})

	t.Run("should fetch top tours", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tours/top", r.RequestURI)
			w.Write(fixture(t, "tours_top.json"))
		}

		tours, err := api.TopTours(ctx)

		require.NoError(t, err)
		assert.Len(t, tours, 2)
		assert.Equal(t, 2025, tours[0].CreatedAt.Year())
		assert.True(t, tours[1].CreatedAt.IsZero())
	})

	t.Run("should return an empty top list when data is missing", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":true,"data":null}`))
		}

		tours, err := api.TopTours(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, tours)
		assert.Empty(t, tours)
	})

	t.Run("should return the whole envelope of a single tour", func(t *testing.T) {
		tests := []struct {
			name           string
			fixture        string
			code           int
			expectedStatus bool
		}{
			{"found", "tour.json", http.StatusOK, true},
			{"missing", "tour_missing.json", http.StatusNotFound, false},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				handlerFunc = func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "/tours/7", r.RequestURI)
					w.WriteHeader(test.code)
					w.Write(fixture(t, test.fixture))
				}

				envelope, err := api.GetTour(ctx, 7)

				require.NoError(t, err)
				assert.Equal(t, test.expectedStatus, envelope.Status)
				if test.expectedStatus {
					assert.Equal(t, "Khiva", envelope.Data.Address)
					assert.Len(t, envelope.Data.Routes, 2)
				} else {
					assert.Nil(t, envelope.Data)
					assert.Equal(t, "tour not found", *envelope.Message)
				}
			})
		}

		t.Run("should refuse a missing id", func(t *testing.T) {
			_, err := api.GetTour(ctx, 0)

			assert.ErrorIs(t, err, schema.ErrMissingID)
		})
	})

	t.Run("should validate find before any request", func(t *testing.T) {
		called := false
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			called = true
		}

		tests := []struct {
			name    string
			query   remote.TourQuery
			missing []string
		}{
			{"no address", remote.TourQuery{Start: "2025-07-01"}, []string{"address"}},
			{"no start", remote.TourQuery{Address: "Khiva"}, []string{"start"}},
			{"nothing", remote.TourQuery{}, []string{"address", "start"}},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := api.FindTours(ctx, test.query)

				var validationErr *schema.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.ErrorIs(t, err, schema.ErrMissingParams)
				assert.Equal(t, test.missing, validationErr.Fields)
			})
		}

		assert.False(t, called)
	})

	t.Run("should default end and people on find", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tours/find?address=Khiva&end=2025-07-01&people=1&start=2025-07-01", r.RequestURI)
			w.Write(fixture(t, "tours_top.json"))
		}

		tours, err := api.FindTours(ctx, remote.TourQuery{Address: "Khiva", Start: "2025-07-01"})

		require.NoError(t, err)
		assert.Len(t, tours, 2)
	})

	t.Run("should fail on an undecodable body", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>bad gateway</html>`))
		}

		_, err := api.FindTours(ctx, remote.TourQuery{Address: "Khiva", Start: "2025-07-01", People: 3})

		assert.ErrorIs(t, err, schema.ErrUnexpectedResponse)
	})
}

func TestTransportErrors(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := testServer.URL
	testServer.Close()

	api := newTestClient(url, caching.NewRedisCache(nil))

	_, err := api.TopTours(context.Background())

	var apiErr *schema.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, schema.ConnectionError, apiErr.Code)
}

func TestCars(t *testing.T) {
	ctx := context.Background()

	var handlerFunc http.HandlerFunc
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerFunc(w, r)
	}))
	defer testServer.Close()

	api := newTestClient(testServer.URL, caching.NewRedisCache(nil))

	t.Run("should list cars", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cars?page=1&page_size=12", r.RequestURI)
			w.Write(fixture(t, "cars_page.json"))
		}

		page, err := api.ListCars(ctx, 1, 12)

		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.True(t, page.Items[0].UnlimitedKm)
	})

	t.Run("should require a title on find", func(t *testing.T) {
		_, err := api.FindCars(ctx, remote.CarQuery{})
		assert.ErrorIs(t, err, schema.ErrMissingParams)
	})

	t.Run("should default the price bounds on find", func(t *testing.T) {
		tests := []struct {
			name     string
			query    remote.CarQuery
			expected string
		}{
			{
				"no bounds",
				remote.CarQuery{Title: "Malibu"},
				"/cars/find?max_price=9007199254740991&min_price=0&title=Malibu",
			},
			{
				"given bounds",
				remote.CarQuery{Title: "Malibu", MinPrice: converting.PointerToValue(int64(20)), MaxPrice: converting.PointerToValue(int64(60))},
				"/cars/find?max_price=60&min_price=20&title=Malibu",
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				handlerFunc = func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, test.expected, r.RequestURI)
					w.Write(fixture(t, "cars_top.json"))
				}

				cars, err := api.FindCars(ctx, test.query)

				require.NoError(t, err)
				assert.Len(t, cars, 1)
			})
		}
	})
}

func TestTopListingsCache(t *testing.T) {
	ctx := context.Background()
	key := caching.Key("cars", "top")

	calls := 0
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(fixture(t, "cars_top.json"))
	}))
	defer testServer.Close()

	t.Run("should store a miss", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(key).RedisNil()
		mock.Regexp().ExpectSetEx(key, `.+`, time.Minute).SetVal("OK")

		cars, err := newTestClient(testServer.URL, caching.NewRedisCache(redisClient)).TopCars(ctx)

		require.NoError(t, err)
		assert.Len(t, cars, 1)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should serve a hit without calling the service", func(t *testing.T) {
		calls = 0
		cache, mock := seededCache(t, key, []schema.Car{{ID: 99, Title: "Cached"}})

		cars, err := newTestClient(testServer.URL, cache).TopCars(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(99), cars[0].ID)
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fall back to the service when redis fails", func(t *testing.T) {
		calls = 0
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetErr(errors.New("i/o timeout"))
		mock.Regexp().ExpectSetEx(key, `.+`, time.Minute).SetErr(errors.New("i/o timeout"))

		cars, err := newTestClient(testServer.URL, caching.NewRedisCache(redisClient)).TopCars(ctx)

		require.NoError(t, err)
		assert.Len(t, cars, 1)
		assert.Equal(t, 1, calls)
	})
}

// seededCache captures what the cacher writes and serves it back on the next read.
func seededCache(t *testing.T, key string, value any) (*caching.Cacher, redismock.ClientMock) {
	var stored []byte

	seedClient, seedMock := redismock.NewClientMock()
	seedMock.CustomMatch(func(expected, actual []interface{}) error {
		stored = actual[len(actual)-1].([]byte)
		return nil
	}).ExpectSetEx(key, nil, time.Minute).SetVal("OK")
	require.NoError(t, caching.NewRedisCache(seedClient).Store(context.Background(), key, value, time.Minute))

	redisClient, mock := redismock.NewClientMock()
	mock.ExpectGet(key).SetVal(string(stored))

	return caching.NewRedisCache(redisClient), mock
}

func TestBookings(t *testing.T) {
	ctx := context.Background()

	var handlerFunc http.HandlerFunc
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerFunc(w, r)
	}))
	defer testServer.Close()

	api := newTestClient(testServer.URL, caching.NewRedisCache(nil))

	t.Run("should post tour bookings", func(t *testing.T) {
		tests := []struct {
			name     string
			fixture  string
			code     int
			expected bool
		}{
			{"accepted", "booking_ok.json", http.StatusCreated, true},
			{"refused", "booking_refused.json", http.StatusConflict, false},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				handlerFunc = func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodPost, r.Method)
					assert.Equal(t, "/bookings", r.RequestURI)

					body, _ := io.ReadAll(r.Body)
					assert.JSONEq(t, `{"name":"Aziz","email":"aziz@example.com","people":2,"tour_id":7}`, string(body))

					w.WriteHeader(test.code)
					w.Write(fixture(t, test.fixture))
				}

				ok, err := api.CreateTourBooking(ctx, schema.TourBooking{
					Name:   "Aziz",
					Email:  "aziz@example.com",
					People: 2,
					TourID: 7,
				})

				require.NoError(t, err)
				assert.Equal(t, test.expected, ok)
			})
		}
	})

	t.Run("should post car bookings with null dates", func(t *testing.T) {
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/car-bookings", r.RequestURI)

			var payload map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Contains(t, payload, "start_date")
			assert.Nil(t, payload["start_date"])
			assert.Equal(t, "+998901234567", payload["phone"])

			w.Write(fixture(t, "booking_ok.json"))
		}

		ok, err := api.CreateCarBooking(ctx, schema.CarBooking{
			Name:   "Aziz",
			Email:  "aziz@example.com",
			Phone:  converting.NonEmpty("+998901234567"),
			People: 1,
			CarID:  3,
		})

		require.NoError(t, err)
		assert.True(t, ok)
	})
}
