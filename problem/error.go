package problem

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// ErrInvalidProperty matches every *InvalidPropertyError via errors.Is.
var ErrInvalidProperty = errors.New("problem: invalid property")

// InvalidPropertyError is returned by Problem.Get for names that are neither
// a required member nor an additional field.
type InvalidPropertyError struct {
	Name string
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("invalid property name %q", e.Name)
}

func (e *InvalidPropertyError) Is(target error) bool {
	return target == ErrInvalidProperty
}

// Error is a problem-aware error. It carries a status code, optional problem
// type, title and additional fields, an optional cause, and the stack
// captured when it was created. The With* setters modify the receiver and
// return it so they can be chained at the raise site.
type Error struct {
	msg         string
	status      int
	cause       error
	problemType string
	title       string
	details     map[string]any
	stack       []Frame
}

// NewError returns an Error with the given status and message.
func NewError(status int, msg string) *Error {
	return &Error{msg: msg, status: status, stack: callers(1)}
}

// Errorf is NewError with a formatted message. The %w verb is not
// interpreted; use Wrap to attach a cause.
func Errorf(status int, format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), status: status, stack: callers(1)}
}

// Wrap returns an Error with the given status and message whose cause is
// err. Error() reports both messages.
func Wrap(err error, status int, msg string) *Error {
	return &Error{msg: msg, status: status, cause: err, stack: callers(1)}
}

// WithStatus attaches an HTTP status to err. The result reports err's
// message and unwraps to err. If err is nil, the status text is used as the
// message.
func WithStatus(err error, status int) error {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	return &statusError{msg: msg, status: status, cause: err}
}

// WithType sets the problem type URI.
func (e *Error) WithType(uri string) *Error {
	e.problemType = uri
	return e
}

// WithTitle sets the problem title.
func (e *Error) WithTitle(title string) *Error {
	e.title = title
	return e
}

// WithAdditionalDetails replaces the additional fields.
func (e *Error) WithAdditionalDetails(details map[string]any) *Error {
	e.details = maps.Clone(details)
	return e
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

// ProblemMessage returns the message the error was created with. A Wrap
// without a message reports its cause's text instead.
func (e *Error) ProblemMessage() string {
	if e.msg == "" && e.cause != nil {
		return e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the status code the error was created with.
func (e *Error) HTTPStatus() int {
	return e.status
}

// ProblemType returns the problem type URI, or "" when unset.
func (e *Error) ProblemType() string {
	return e.problemType
}

// ProblemTitle returns the problem title, or "" when unset.
func (e *Error) ProblemTitle() string {
	return e.title
}

// AdditionalDetails returns a copy of the additional fields.
func (e *Error) AdditionalDetails() map[string]any {
	return maps.Clone(e.details)
}

// StackTrace returns the stack captured when the error was created.
func (e *Error) StackTrace() []Frame {
	return cloneFrames(e.stack)
}

type statusError struct {
	msg    string
	status int
	cause  error
}

func (e *statusError) Error() string {
	return e.msg
}

func (e *statusError) Unwrap() error {
	return e.cause
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
