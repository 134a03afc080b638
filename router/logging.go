package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/drblury/apiproblem/problem"
)

// loggingMiddleware logs one debug record per request once it has been
// served, flagging responses that carry a problem payload.
func loggingMiddleware(logger *slog.Logger, cfg Config) Middleware {
	quiet := cloneStrings(cfg.QuietdownRoutes)
	hidden := cloneStrings(cfg.HideHeaders)

	logger.Debug("Config for logging middleware", "QuietdownRoutes", quiet, "HideHeaders", hidden)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(quiet, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			headers := r.Header.Clone()
			redactHeaders(headers, hidden)

			attrs := []any{
				"Path", r.URL.Path,
				"Method", r.Method,
				"Header", headers,
				"Status", rec.statusCode(),
				"Duration", time.Since(start),
			}
			if r.ContentLength > 0 {
				attrs = append(attrs, "ContentLength", r.ContentLength)
			}
			if rec.Header().Get("Content-Type") == problem.ContentType {
				attrs = append(attrs, "Problem", true)
			}

			logger.DebugContext(r.Context(), "Request", attrs...)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	if r.status == 0 {
		r.status = statusCode
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// redactHeaders replaces the values of hidden headers by their total length.
func redactHeaders(headers http.Header, hidden []string) {
	for _, name := range hidden {
		canonical := http.CanonicalHeaderKey(name)
		values, ok := headers[canonical]
		if !ok {
			continue
		}

		size := 0
		for _, v := range values {
			size += len(v)
		}
		headers[canonical] = []string{fmt.Sprintf("[REDACTED - %d bytes]", size)}
	}
}
