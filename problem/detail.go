package problem

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Detail is the detail input of a Problem: either literal text or a
// structured error. The zero value is an empty text detail.
type Detail struct {
	text string
	err  *StructuredError
}

// Text returns a detail that is rendered verbatim.
func Text(detail string) Detail {
	return Detail{text: detail}
}

// Structured returns a detail backed by a structured error. A nil error
// yields an empty text detail.
func Structured(err *StructuredError) Detail {
	return Detail{err: err}
}

// FromError converts err and its cause chain into a structured detail. Each
// link is inspected on its own: wrapped errors do not lend their status code
// or problem metadata to the link that wraps them. A nil err yields an empty
// text detail.
func FromError(err error) Detail {
	if err == nil {
		return Detail{}
	}
	// skip FromError so the captured trace starts at the caller
	return Detail{err: structure(err, callers(1), 0)}
}

// Structured returns the structured error, or nil for a text detail.
func (d Detail) Structured() *StructuredError {
	return d.err
}

// IsStructured reports whether the detail carries an error.
func (d Detail) IsStructured() bool {
	return d.err != nil
}

// StructuredError is the error-like form of a detail.
type StructuredError struct {
	Message  string
	Code     int
	Cause    *StructuredError
	TypeName string
	Trace    []Frame

	// Problem is set when the error carries its own problem metadata.
	Problem *Metadata
}

// Metadata is the problem information a problem-aware error supplies.
// Empty fields are treated as absent.
type Metadata struct {
	Type              string
	Title             string
	AdditionalDetails map[string]any
}

// ProblemAware is implemented by errors that carry their own problem type,
// title and additional fields. Empty values mean the error has no opinion.
type ProblemAware interface {
	error
	ProblemType() string
	ProblemTitle() string
	AdditionalDetails() map[string]any
}

// StatusCoder is implemented by errors that declare an HTTP status code.
type StatusCoder interface {
	error
	HTTPStatus() int
}

// MessageCarrier is implemented by wrapping errors whose Error text repeats
// the cause. ProblemMessage returns the link's own message.
type MessageCarrier interface {
	error
	ProblemMessage() string
}

// Cause describes one link of the causal chain in the exception_stack field.
type Cause struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Trace   []Frame `json:"trace"`
}

// maxCauseDepth bounds the walk for errors whose Unwrap never terminates.
const maxCauseDepth = 128

func structure(err error, fallbackTrace []Frame, depth int) *StructuredError {
	se := &StructuredError{
		Message:  linkMessage(err),
		TypeName: typeName(err),
	}

	if coder, ok := err.(StatusCoder); ok {
		se.Code = coder.HTTPStatus()
	}

	if tracer, ok := err.(StackTracer); ok {
		se.Trace = cloneFrames(tracer.StackTrace())
	} else {
		se.Trace = fallbackTrace
	}

	if aware, ok := err.(ProblemAware); ok {
		se.Problem = &Metadata{
			Type:              aware.ProblemType(),
			Title:             aware.ProblemTitle(),
			AdditionalDetails: maps.Clone(aware.AdditionalDetails()),
		}
	}

	if cause := unwrapOne(err); cause != nil && depth < maxCauseDepth {
		se.Cause = structure(cause, []Frame{}, depth+1)
	}
	return se
}

func linkMessage(err error) string {
	if mc, ok := err.(MessageCarrier); ok {
		return mc.ProblemMessage()
	}
	return err.Error()
}

func unwrapOne(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if e != nil {
				return e
			}
		}
	}
	return nil
}

func typeName(err error) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// causes lists the links below se, nearest first.
func (se *StructuredError) causes() []Cause {
	var out []Cause
	for link := se.Cause; link != nil; link = link.Cause {
		trace := link.Trace
		if trace == nil {
			trace = []Frame{}
		}
		out = append(out, Cause{
			Code:    link.Code,
			Message: strings.TrimSpace(link.Message),
			Trace:   trace,
		})
	}
	return out
}

func (se *StructuredError) trace() []Frame {
	if se.Trace == nil {
		return []Frame{}
	}
	return se.Trace
}
