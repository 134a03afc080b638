package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/drblury/apiproblem/problem"
)

// timeoutMiddleware bounds request handling with http.TimeoutHandler. Timed
// out requests receive a 503 problem payload.
func timeoutMiddleware(timeout time.Duration) Middleware {
	body := timeoutBody(timeout)
	return func(next http.Handler) http.Handler {
		handler := http.TimeoutHandler(next, timeout, body)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// TimeoutHandler starts its own clock after this one.
			deadline := time.Now().Add(timeout)
			handler.ServeHTTP(&timeoutWriter{ResponseWriter: w, deadline: deadline}, r)
		})
	}
}

func timeoutBody(timeout time.Duration) string {
	p := problem.New(http.StatusServiceUnavailable,
		problem.Text(fmt.Sprintf("request exceeded the %s timeout", timeout)))
	body, err := p.MarshalJSON()
	if err != nil {
		return http.StatusText(http.StatusServiceUnavailable)
	}
	return string(body)
}

// timeoutWriter labels the body http.TimeoutHandler writes on expiry. A 503
// without a content type counts as that body only once the deadline passed;
// earlier ones were written by the handler and pass through untouched.
type timeoutWriter struct {
	http.ResponseWriter
	deadline time.Time
}

func (w *timeoutWriter) WriteHeader(statusCode int) {
	if statusCode == http.StatusServiceUnavailable && w.expired() && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", problem.ContentType)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *timeoutWriter) expired() bool {
	return !time.Now().Before(w.deadline)
}

func (w *timeoutWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
