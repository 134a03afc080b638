package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drblury/apiproblem/responder"
)

func TestLoggingMiddlewareRecordsProblemResponses(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rsp := responder.NewResponder(responder.WithLogger(discardLogger()))

	mux := New(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rsp.HandleNotFoundError(w, r, errors.New("order 42 does not exist"))
		}),
		WithLogger(logger),
		WithoutTimeoutMiddleware(),
		WithConfig(Config{
			QuietdownRoutes: []string{"/healthz"},
			HideHeaders:     []string{"authorization"},
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	req.Header.Set("Authorization", "Bearer token")
	mux.ServeHTTP(httptest.NewRecorder(), req)
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var requests []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if entry["msg"] == "Request" {
			requests = append(requests, entry)
		}
	}

	if len(requests) != 1 {
		t.Fatalf("expected one request record, got %d: %s", len(requests), buf.String())
	}
	entry := requests[0]
	if entry["Path"] != "/orders/42" || entry["Status"] != float64(http.StatusNotFound) || entry["Problem"] != true {
		t.Fatalf("unexpected request record: %v", entry)
	}

	headers, _ := entry["Header"].(map[string]any)
	auth, _ := headers["Authorization"].([]any)
	if len(auth) != 1 || auth[0] != "[REDACTED - 12 bytes]" {
		t.Fatalf("authorization header not redacted: %v", headers["Authorization"])
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	if rec.statusCode() != http.StatusOK {
		t.Fatalf("unexpected default status %d", rec.statusCode())
	}

	_, _ = rec.Write([]byte("ok"))
	rec.WriteHeader(http.StatusTeapot)
	if rec.statusCode() != http.StatusOK {
		t.Fatalf("status must be fixed by the first write, got %d", rec.statusCode())
	}
}
