package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"

	"github.com/drblury/apiproblem/responder"
)

// New returns a new *http.ServeMux that serves apiHandle behind the
// middleware chain selected by opts.
func New(apiHandle http.Handler, opts ...Option) *http.ServeMux {
	if apiHandle == nil {
		panic("router: handler cannot be nil")
	}

	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", chain(apiHandle, settings.middlewareChain()))
	return mux
}

// chain wraps handler so that middlewares[0] runs first.
func chain(handler http.Handler, middlewares []Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			handler = middlewares[i](handler)
		}
	}
	return handler
}

// validationMiddleware rejects requests that do not match swagger. Rejections
// are rendered by problems with the status chosen by the validator, 404 for
// unknown routes and 400 for invalid input.
func validationMiddleware(swagger *openapi3.T, problems *responder.Responder) Middleware {
	// Servers are dropped so host names are not validated; the document
	// itself is left untouched because it may also be served.
	doc := *swagger
	doc.Servers = nil

	validatorOptions := &oapiMW.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
				return nil
			},
		},
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			problems.HandleStatus(w, nil, statusCode, strings.TrimSpace(message))
		},
	}

	return oapiMW.OapiRequestValidatorWithOptions(&doc, validatorOptions)
}
