package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/caching"
	"bitbucket.org/realdreams/travel-site/internal/tools/client"
	"bitbucket.org/realdreams/travel-site/internal/tools/requesting"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Client talks to the catalogue service. Non-2xx answers are decoded like any other response;
// only transport failures surface as *schema.APIError.
type Client struct {
	options  *client.Options
	http     *http.Client
	cache    *caching.Cacher
	cacheTTL time.Duration
	logger   *zerolog.Logger
}

func New(log *zerolog.Logger, cache *caching.Cacher, cacheTTL time.Duration, optionFuncs ...client.OptionFunc) *Client {
	c := &Client{
		options:  client.NewOptions(optionFuncs...),
		cache:    cache,
		cacheTTL: cacheTTL,
	}

	return c.WithLogger(log)
}

// WithLogger returns a copy whose outgoing requests are logged to log.
func (c *Client) WithLogger(log *zerolog.Logger) *Client {
	clone := *c
	clone.logger = log
	clone.http = &http.Client{
		Timeout: c.options.Timeout(),
		Transport: &requesting.InterceptorTransport{
			Transport: c.options.Transport(),
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(log, c.options.Name()),
				requesting.NewHeaderTransportMiddleware(c.requestHeaders()),
			},
		},
	}

	return &clone
}

func (c *Client) requestHeaders() http.Header {
	headers := c.options.Headers()
	headers.Set("Content-Type", "application/json")
	return headers
}

type pageQuery struct {
	Page     int `url:"page"`
	PageSize int `url:"page_size"`
}

func newPageQuery(page, pageSize int) pageQuery {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return pageQuery{Page: page, PageSize: pageSize}
}

func get[T any](ctx context.Context, c *Client, path string, params any) (schema.Envelope[T], error) {
	endpoint := c.options.BaseURL() + path
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return schema.Envelope[T]{}, err
		}
		endpoint = fmt.Sprintf("%s?%s", endpoint, values.Encode())
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return schema.Envelope[T]{}, err
	}

	return send[T](c, httpRequest)
}

func post[T any](ctx context.Context, c *Client, path string, body any) (schema.Envelope[T], error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return schema.Envelope[T]{}, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.BaseURL()+path, bytes.NewReader(payload))
	if err != nil {
		return schema.Envelope[T]{}, err
	}

	return send[T](c, httpRequest)
}

func send[T any](c *Client, httpRequest *http.Request) (schema.Envelope[T], error) {
	var envelope schema.Envelope[T]

	rs, apiErr := requesting.RequestErrors(c.http.Do(httpRequest))
	if apiErr != nil {
		return envelope, apiErr
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return envelope, schema.NewConnectionError(err.Error())
	}

	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		c.logger.Warn().
			Int("code", rs.StatusCode).
			Str("url", httpRequest.URL.String()).
			Err(err).
			Msg("undecodable response")

		return envelope, fmt.Errorf("%w: %s", schema.ErrUnexpectedResponse, err.Error())
	}

	if !requesting.IsValidResponse(rs.StatusCode) {
		c.logger.Debug().
			Int("code", rs.StatusCode).
			Bool("status", envelope.Status).
			Str("url", httpRequest.URL.String()).
			Msg("non-2xx response")
	}

	return envelope, nil
}

func escapeID(id int64) string {
	return strconv.FormatInt(id, 10)
}
