package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drblury/apiproblem/problem"
)

type fakeDoer struct {
	status int
	err    error
	seen   *http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.seen = req
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{StatusCode: f.status, Body: io.NopCloser(strings.NewReader("body"))}, nil
}

func TestHTTPProbeMisconfiguration(t *testing.T) {
	cases := []struct {
		name   string
		method string
		target string
	}{
		{name: "blank target", method: http.MethodGet, target: "  "},
		{name: "invalid method", method: "BAD METHOD", target: "https://search.internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewHTTPProbe("search", tc.method, tc.target, &fakeDoer{status: http.StatusOK})(context.Background())

			var perr *problem.Error
			if !errors.As(err, &perr) || perr.HTTPStatus() != http.StatusInternalServerError {
				t.Fatalf("expected a 500 problem, got %v", err)
			}
			if perr.AdditionalDetails()[FieldProbe] != "search" {
				t.Fatalf("probe field missing: %v", perr.AdditionalDetails())
			}
		})
	}
}

func TestHTTPProbeRequest(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK}
	check := NewHTTPProbe("search", " head ", "https://search.internal/health", doer,
		WithHTTPRequestMutator(nil),
		WithHTTPRequestMutator(func(req *http.Request) error {
			req.Header.Set("X-Probe", "1")
			return nil
		}),
	)

	if err := check(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doer.seen.Method != http.MethodHead {
		t.Fatalf("unexpected method %q", doer.seen.Method)
	}
	if doer.seen.Header.Get("X-Probe") != "1" {
		t.Fatal("mutator did not run")
	}
}

func TestHTTPProbeDefaultsToGETAndDefaultClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	//nolint:staticcheck // nil context falls back to background
	if err := NewHTTPProbe("docs", "", server.URL, nil)(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPProbeFailures(t *testing.T) {
	down := errors.New("dial tcp: connection refused")
	rejected := errors.New("missing version header")

	cases := []struct {
		name    string
		doer    *fakeDoer
		opts    []HTTPProbeOption
		message string
		cause   error
	}{
		{
			name:    "transport error",
			doer:    &fakeDoer{err: down},
			message: "search probe request failed: dial tcp: connection refused",
			cause:   down,
		},
		{
			name:    "status outside 2xx",
			doer:    &fakeDoer{status: http.StatusServiceUnavailable},
			message: "search probe: unexpected status 503 Service Unavailable",
		},
		{
			name:    "status not in allow list",
			doer:    &fakeDoer{status: http.StatusOK},
			opts:    []HTTPProbeOption{WithHTTPAllowedStatuses(http.StatusNoContent)},
			message: "search probe: unexpected status 200 OK",
		},
		{
			name: "validator veto",
			doer: &fakeDoer{status: http.StatusOK},
			opts: []HTTPProbeOption{WithHTTPResponseValidator(func(*http.Response) error {
				return rejected
			})},
			message: "search probe: missing version header",
			cause:   rejected,
		},
		{
			name: "mutator failure",
			doer: &fakeDoer{status: http.StatusOK},
			opts: []HTTPProbeOption{WithHTTPRequestMutator(func(*http.Request) error {
				return rejected
			})},
			message: "search probe: request mutation failed: missing version header",
			cause:   rejected,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewHTTPProbe("search", http.MethodGet, "https://search.internal", tc.doer, tc.opts...)(context.Background())

			var perr *problem.Error
			if !errors.As(err, &perr) || perr.HTTPStatus() != http.StatusServiceUnavailable {
				t.Fatalf("expected a 503 problem, got %v", err)
			}
			if err.Error() != tc.message {
				t.Fatalf("unexpected message: got %q want %q", err.Error(), tc.message)
			}
			if tc.cause != nil && !errors.Is(err, tc.cause) {
				t.Fatalf("cause lost: %v", err)
			}
		})
	}
}

func TestHTTPProbeCustomExpectation(t *testing.T) {
	check := NewHTTPProbe("legacy", http.MethodGet, "https://legacy.internal", &fakeDoer{status: http.StatusFound},
		WithHTTPStatusExpectation(func(status int) bool { return status < 400 }),
		WithHTTPDrainResponseBody(false),
	)
	if err := check(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnexpectedUpstreamStatusIsBadGatewayCause(t *testing.T) {
	err := NewHTTPProbe("docs", http.MethodGet, "https://docs.internal", &fakeDoer{status: http.StatusTeapot})(context.Background())

	se := problem.FromError(err).Structured()
	if se == nil || se.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected structured error: %+v", se)
	}
	if se.Cause == nil || se.Cause.Code != http.StatusBadGateway {
		t.Fatalf("expected a 502 cause, got %+v", se.Cause)
	}
	if got := se.Cause.Problem.AdditionalDetails[FieldUpstreamStatus]; got != http.StatusTeapot {
		t.Fatalf("unexpected upstream status: %v", got)
	}
	if err.Error() != "docs probe: unexpected status 418 I'm a teapot" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDBPingProbe(t *testing.T) {
	var missing DBPinger
	if err := NewDBPingProbe("postgres", missing)(context.Background()); err == nil {
		t.Fatal("expected error for missing client")
	}

	err := NewDBPingProbe("postgres", dbFunc(func(ctx context.Context) error {
		if ctx == nil {
			t.Fatal("ping without context")
		}
		return errors.New("unreachable")
	}))(context.Background())
	if err == nil || err.Error() != "postgres probe failed: unreachable" {
		t.Fatalf("unexpected error: %v", err)
	}
}

type dbFunc func(ctx context.Context) error

func (f dbFunc) PingContext(ctx context.Context) error { return f(ctx) }
