package requesting

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

type LoggingTransportMiddleware struct {
	Transport   http.RoundTripper
	log         *zerolog.Logger
	destination string
}

func NewLoggingTransportMiddleware(log *zerolog.Logger, destination string) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:         log,
			destination: destination,
			Transport:   rt,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	message := t.log.Info().
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("destination", t.destination)

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error()).Int("code", 0)
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

// HeaderTransportMiddleware sets fixed headers on every outgoing request, e.g. the
// tunnel bypass header the remote service sits behind.
type HeaderTransportMiddleware struct {
	Transport http.RoundTripper
	headers   http.Header
}

func NewHeaderTransportMiddleware(headers http.Header) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &HeaderTransportMiddleware{
			Transport: rt,
			headers:   headers,
		}
	}
}

func (h *HeaderTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, values := range h.headers {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return h.Transport.RoundTrip(req)
}
