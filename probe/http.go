package probe

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/drblury/apiproblem/problem"
)

// HTTPDoer is the part of *http.Client a probe needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPStatusExpectation reports whether a response status is healthy.
type HTTPStatusExpectation func(status int) bool

// HTTPRequestMutator edits the request before it is sent.
type HTTPRequestMutator func(req *http.Request) error

// HTTPResponseValidator can reject a response whose status was accepted.
type HTTPResponseValidator func(resp *http.Response) error

// HTTPProbeOption configures NewHTTPProbe.
type HTTPProbeOption func(*httpProbe)

type httpProbe struct {
	name       string
	method     string
	target     string
	client     HTTPDoer
	accept     HTTPStatusExpectation
	mutators   []HTTPRequestMutator
	validators []HTTPResponseValidator
	drain      bool
}

// NewHTTPProbe requests target with method, GET when empty. Any 2xx status is
// healthy unless an option says otherwise. A nil client means
// http.DefaultClient.
//
// A status that is not accepted fails the probe with a 502 cause carrying
// the received code in FieldUpstreamStatus.
func NewHTTPProbe(name, method, target string, client HTTPDoer, opts ...HTTPProbeOption) Func {
	p := &httpProbe{
		name:   name,
		method: strings.ToUpper(strings.TrimSpace(method)),
		target: strings.TrimSpace(target),
		client: client,
		drain:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.method == "" {
		p.method = http.MethodGet
	}
	if p.client == nil {
		p.client = http.DefaultClient
	}
	if p.accept == nil {
		p.accept = is2xx
	}
	return p.check
}

func (p *httpProbe) check(ctx context.Context) error {
	if p.target == "" {
		return misconfigured(p.name, nil, p.name+" probe: target URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, p.method, p.target, nil)
	if err != nil {
		return misconfigured(p.name, err, p.name+" probe: failed to build request")
	}
	for _, mutate := range p.mutators {
		if mutate == nil {
			continue
		}
		if err := mutate(req); err != nil {
			return unavailable(p.name, err, p.name+" probe: request mutation failed")
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return unavailable(p.name, err, p.name+" probe request failed")
	}
	defer resp.Body.Close()

	if err := p.verify(resp); err != nil {
		return unavailable(p.name, err, p.name+" probe")
	}
	if p.drain {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return unavailable(p.name, err, p.name+" probe: failed to drain response body")
		}
	}
	return nil
}

func (p *httpProbe) verify(resp *http.Response) error {
	if !p.accept(resp.StatusCode) {
		return problem.Errorf(http.StatusBadGateway, "unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)).
			WithAdditionalDetails(map[string]any{FieldUpstreamStatus: resp.StatusCode})
	}
	for _, validate := range p.validators {
		if validate == nil {
			continue
		}
		if err := validate(resp); err != nil {
			return err
		}
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// WithHTTPClient replaces the client passed to NewHTTPProbe.
func WithHTTPClient(client HTTPDoer) HTTPProbeOption {
	return func(p *httpProbe) {
		p.client = client
	}
}

// WithHTTPStatusExpectation replaces the 2xx check.
func WithHTTPStatusExpectation(expect HTTPStatusExpectation) HTTPProbeOption {
	return func(p *httpProbe) {
		p.accept = expect
	}
}

// WithHTTPAllowedStatuses accepts exactly the listed statuses. Without any
// status the 2xx check stays in place.
func WithHTTPAllowedStatuses(statuses ...int) HTTPProbeOption {
	if len(statuses) == 0 {
		return WithHTTPStatusExpectation(is2xx)
	}
	allowed := make(map[int]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}
	return WithHTTPStatusExpectation(func(status int) bool {
		return allowed[status]
	})
}

// WithHTTPRequestMutator adds a mutator. Mutators run in registration order.
func WithHTTPRequestMutator(mutator HTTPRequestMutator) HTTPProbeOption {
	return func(p *httpProbe) {
		p.mutators = append(p.mutators, mutator)
	}
}

// WithHTTPResponseValidator adds a validator. Validators run in registration
// order after the status check.
func WithHTTPResponseValidator(validator HTTPResponseValidator) HTTPProbeOption {
	return func(p *httpProbe) {
		p.validators = append(p.validators, validator)
	}
}

// WithHTTPDrainResponseBody controls whether the body is read to the end so
// the connection can be reused. On by default.
func WithHTTPDrainResponseBody(enabled bool) HTTPProbeOption {
	return func(p *httpProbe) {
		p.drain = enabled
	}
}
