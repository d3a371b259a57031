package client

import (
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second
	DefaultBaseURL = "http://185.191.141.85:8080"
)

type OptionFunc func(o *Options)

type Options struct {
	// Name of the caller, used for logging and the User-Agent
	name string

	// BaseURL - full URL to the remote service (including protocol)
	baseURL string

	// Timeout - if not set, then default timeout is used
	timeout time.Duration

	// Headers added to every request, e.g. the tunnel bypass header
	headers http.Header

	transport http.RoundTripper
}

func WithName(name string) OptionFunc {
	return func(o *Options) {
		o.name = name
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

// WithHeader accepts "Name: value" pairs; malformed entries are ignored.
func WithHeader(raw string) OptionFunc {
	return func(o *Options) {
		name, value, ok := strings.Cut(raw, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return
		}
		o.headers.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(o *Options) {
		o.transport = transport
	}
}

func NewOptions(optionFuncs ...OptionFunc) *Options {
	options := &Options{
		name:    "travel-site",
		headers: http.Header{},
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	return options
}

func (o *Options) Name() string {
	return o.name
}

func (o *Options) BaseURL() string {
	if o.baseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(o.baseURL, "/")
}

func (o *Options) Timeout() time.Duration {
	if o.timeout != 0 {
		return o.timeout
	}
	return DefaultTimeout
}

func (o *Options) Headers() http.Header {
	return o.headers.Clone()
}

func (o *Options) Transport() http.RoundTripper {
	if o.transport != nil {
		return o.transport
	}
	return http.DefaultTransport
}
