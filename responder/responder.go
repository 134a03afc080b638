package responder

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const jsonContentType = "application/json"

// ErrorClassifierFunc maps an error to a response status for HandleErrors.
// handled is false for errors the classifier does not recognise.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// ResponderOption configures NewResponder.
type ResponderOption func(*Responder)

// StatusMetadata customises the problems rendered for one status code.
//
// TypeURI and Title replace the problem type and title unless the error
// brings its own. LogLevel 0 is taken as unset and logs at slog.LevelError.
// LogMsg defaults to the title, then to the standard status text.
type StatusMetadata struct {
	TypeURI  string
	Title    string
	LogLevel slog.Level
	LogMsg   string
}

// Responder writes JSON and problem responses for HTTP handlers and logs
// every problem it renders. Problems carry the request instance, a ULID
// trace id and a timestamp.
type Responder struct {
	log         *slog.Logger
	byStatus    map[int]StatusMetadata
	classify    ErrorClassifierFunc
	typeBase    string
	stackTraces bool
}

// NewResponder logs through slog.Default and uses Warn for 400, 401 and 404
// problems, Error for everything else.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log: slog.Default(),
		byStatus: map[int]StatusMetadata{
			http.StatusBadRequest:   {LogLevel: slog.LevelWarn},
			http.StatusUnauthorized: {LogLevel: slog.LevelWarn},
			http.StatusNotFound:     {LogLevel: slog.LevelWarn},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger sets the logger problems are written to. Nil is ignored.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier installs the classifier HandleErrors consults first.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.classify = classifier
	}
}

// WithStatusMetadata replaces the metadata of status.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.byStatus == nil {
			r.byStatus = make(map[int]StatusMetadata)
		}
		r.byStatus[status] = meta
	}
}

// WithTypeBaseURL derives the problem type of statuses without an explicit
// TypeURI as baseURL followed by the status code, for example
// https://httpstatuses.io/404.
func WithTypeBaseURL(baseURL string) ResponderOption {
	return func(r *Responder) {
		r.typeBase = strings.TrimRight(baseURL, "/")
	}
}

// WithStackTraces includes the stack trace and the cause chain of the
// reported error in every problem payload. Meant for development builds.
func WithStackTraces(enabled bool) ResponderOption {
	return func(r *Responder) {
		r.stackTraces = enabled
	}
}

// Logger returns the logger problems are written to.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

// metadata resolves the effective metadata of status with every default
// filled in.
func (r *Responder) metadata(status int) StatusMetadata {
	meta := r.byStatus[status]
	if meta.TypeURI == "" && r.typeBase != "" {
		meta.TypeURI = fmt.Sprintf("%s/%d", r.typeBase, status)
	}
	if meta.LogLevel == 0 {
		meta.LogLevel = slog.LevelError
	}
	if meta.LogMsg == "" {
		meta.LogMsg = cmpOr(meta.Title, http.StatusText(status), "problem")
	}
	return meta
}

func cmpOr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
