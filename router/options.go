package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/apiproblem/responder"
)

// Middleware wraps an http.Handler to produce a new http.Handler.
type Middleware func(http.Handler) http.Handler

// Option configures the router via the functional options pattern.
type Option func(*options)

// feature selects one of the default middlewares.
type feature uint8

const (
	featureValidation feature = 1 << iota
	featureCORS
	featureTimeout
	featureLogging

	allFeatures = featureValidation | featureCORS | featureTimeout | featureLogging
)

const defaultTimeout = 30 * time.Second

type options struct {
	config    Config
	logger    *slog.Logger
	swagger   *openapi3.T
	responder *responder.Responder
	outer     []Middleware
	inner     []Middleware
	override  []Middleware
	features  feature
}

func defaultOptions() *options {
	return &options{
		config:   Config{Timeout: defaultTimeout},
		logger:   slog.Default(),
		features: allFeatures,
	}
}

func (o *options) enabled(f feature) bool {
	return o.features&f != 0
}

// middlewareChain lists the middlewares in execution order: the outer
// custom ones, CORS, validation, timeout, logging, then the inner custom
// ones. CORS runs before validation so preflights never reach the
// validator. An override replaces the whole list.
func (o *options) middlewareChain() []Middleware {
	if o.override != nil {
		return cloneMiddlewares(o.override)
	}

	chain := make([]Middleware, 0, len(o.outer)+len(o.inner)+4)
	chain = append(chain, o.outer...)

	if o.enabled(featureCORS) && len(o.config.CORS.Origins) > 0 {
		chain = append(chain, newCORSPolicy(o.config.CORS, o.problemResponder()).middleware())
	}
	if o.enabled(featureValidation) && o.swagger != nil {
		chain = append(chain, validationMiddleware(o.swagger, o.problemResponder()))
	}
	if o.enabled(featureTimeout) && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}
	if o.enabled(featureLogging) && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config))
	}

	return append(chain, o.inner...)
}

func (o *options) problemResponder() *responder.Responder {
	if o.responder == nil {
		logger := o.logger
		if logger == nil {
			logger = slog.Default()
		}
		o.responder = responder.NewResponder(responder.WithLogger(logger))
	}
	return o.responder
}

// WithConfig replaces the router configuration with a copy of cfg.
func WithConfig(cfg Config) Option {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS.Origins = cloneStrings(cfg.CORS.Origins)
	cfg.CORS.Methods = cloneStrings(cfg.CORS.Methods)
	cfg.CORS.Headers = cloneStrings(cfg.CORS.Headers)
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigMutator edits the configuration in place after the defaults and
// any earlier WithConfig have been applied.
func WithConfigMutator(mutator func(*Config)) Option {
	return func(o *options) {
		if mutator != nil {
			mutator(&o.config)
		}
	}
}

// WithLogger sets the logger of the logging middleware and of the default
// problem responder.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResponder sets the responder that renders validation failures and
// rejected CORS preflights as problem payloads.
func WithResponder(r *responder.Responder) Option {
	return func(o *options) {
		o.responder = r
	}
}

// WithSwagger enables request validation against swagger.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithMiddlewares adds middlewares that run before the default chain.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.outer = append(o.outer, middlewares...)
	}
}

// WithTrailingMiddlewares adds middlewares that run after the default chain,
// right before the handler.
func WithTrailingMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.inner = append(o.inner, middlewares...)
	}
}

// WithMiddlewareChain replaces the whole chain, defaults included.
func WithMiddlewareChain(middlewares ...Middleware) Option {
	override := cloneMiddlewares(middlewares)
	return func(o *options) {
		o.override = override
	}
}

// WithoutOpenAPIValidation disables request validation.
func WithoutOpenAPIValidation() Option {
	return without(featureValidation)
}

// WithoutCORSMiddleware disables CORS handling regardless of configuration.
func WithoutCORSMiddleware() Option {
	return without(featureCORS)
}

// WithoutTimeoutMiddleware disables the request timeout.
func WithoutTimeoutMiddleware() Option {
	return without(featureTimeout)
}

// WithoutLoggingMiddleware disables request logging.
func WithoutLoggingMiddleware() Option {
	return without(featureLogging)
}

func without(f feature) Option {
	return func(o *options) {
		o.features &^= f
	}
}

func cloneMiddlewares(middlewares []Middleware) []Middleware {
	cloned := make([]Middleware, len(middlewares))
	copy(cloned, middlewares)
	return cloned
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
