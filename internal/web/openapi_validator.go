package web

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/gin-gonic/gin"
)

//go:embed api/openapi.json
var openapiContent []byte

// OpenapiValidator rejects requests that do not match the embedded description of the JSON endpoints.
func OpenapiValidator(document []byte) (gin.HandlerFunc, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, err
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError: true,
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			code := http.StatusNotFound
			var routeErr *routers.RouteError
			if errors.As(err, &routeErr) && routeErr.Reason == routers.ErrMethodNotAllowed.Error() {
				code = http.StatusMethodNotAllowed
			}
			HandleError(c, code, "Unknown endpoint", err)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		}

		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			HandleError(c, http.StatusBadRequest, "Invalid request", err)
			return
		}
	}, nil
}
