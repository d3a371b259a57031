package requesting

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"bitbucket.org/realdreams/travel-site/internal/schema"
)

func IsValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors separates transport failures from answered requests. Any answered request,
// whatever its status code, is handed back for the caller to inspect.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.APIError) {
	if err == nil {
		return response, nil
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return nil, schema.NewTimeoutError(err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return nil, schema.NewTimeoutError(err.Error())
	}

	return nil, schema.NewConnectionError(err.Error())
}
