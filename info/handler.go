package info

import (
	"errors"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/apiproblem/jsonutil"
	"github.com/drblury/apiproblem/probe"
	"github.com/drblury/apiproblem/responder"
)

// InfoProvider returns the body of the version endpoint, typically build
// metadata.
type InfoProvider func() any

// SwaggerProvider returns the encoded OpenAPI document.
type SwaggerProvider func() ([]byte, error)

// InfoOption configures NewInfoHandler.
type InfoOption func(*InfoHandler)

// ProbeFunc is a single liveness or readiness check.
type ProbeFunc = probe.Func

const defaultProbeTimeout = 2 * time.Second

var errNoDocument = errors.New("openapi document not configured")

// InfoHandler serves the status, probe, version and OpenAPI endpoints.
// Failures are rendered as problems by the embedded responder.
type InfoHandler struct {
	*responder.Responder

	version   InfoProvider
	document  SwaggerProvider
	timeout   time.Duration
	liveness  []ProbeFunc
	readiness []ProbeFunc
}

// NewInfoHandler returns a handler with no checks, an empty version object
// and no OpenAPI document.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder: responder.NewResponder(),
		version:   func() any { return map[string]string{} },
		document:  func() ([]byte, error) { return nil, errNoDocument },
		timeout:   defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder shares r with the handler so probe failures use the same
// status metadata and logger as the rest of the service.
func WithInfoResponder(r *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if r != nil {
			ih.Responder = r
		}
	}
}

func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.version = provider
		}
	}
}

func WithSwaggerProvider(provider SwaggerProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.document = provider
		}
	}
}

// WithOpenAPIDocument serves doc. It is encoded once, on first request.
func WithOpenAPIDocument(doc *openapi3.T) InfoOption {
	if doc == nil {
		return nil
	}
	encode := sync.OnceValues(func() ([]byte, error) {
		return jsonutil.Marshal(doc)
	})
	return WithSwaggerProvider(encode)
}

// WithProbeTimeout bounds a whole round of checks. Non-positive values keep
// the two second default.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.timeout = timeout
		}
	}
}

// WithLivenessChecks sets the checks run by GetHealthz. Nil entries are
// dropped.
func WithLivenessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.liveness = filterProbes(checks)
	}
}

// WithReadinessChecks sets the checks run by GetReadyz. Nil entries are
// dropped.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readiness = filterProbes(checks)
	}
}
