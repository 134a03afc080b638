package responder

import (
	"maps"
	"net/http"
	"time"

	"github.com/drblury/apiproblem/problem"
)

// Additional fields attached to every problem rendered by the responder.
const (
	FieldInstance  = "instance"
	FieldTraceID   = "traceId"
	FieldTimestamp = "timestamp"
)

// NewProblem builds the problem payload HandleAPIError would send for err.
// An outermost error without its own status code reports status. The type,
// title and additional fields of problem-aware errors in the chain are
// preserved.
func (r *Responder) NewProblem(req *http.Request, status int, err error) *problem.Problem {
	detail := problem.FromError(err)
	se := detail.Structured()
	if se == nil {
		return r.newTextProblem(req, status, "")
	}
	if se.Code == 0 {
		se.Code = status
	}

	meta := r.metadata(se.Code)
	fields := make(map[string]any)
	opts := make([]problem.Option, 0, 3)

	own := chainMetadata(se)
	maps.Copy(fields, own.AdditionalDetails)
	switch {
	case own.Type != "":
		opts = append(opts, problem.WithType(own.Type))
	case meta.TypeURI != "":
		opts = append(opts, problem.WithType(meta.TypeURI))
	}
	if own.Title != "" {
		opts = append(opts, problem.WithTitle(own.Title))
	} else if title := titleFor(meta, se.Code, own.Type); title != "" {
		opts = append(opts, problem.WithTitle(title))
	}

	r.addRequestFields(fields, req)
	opts = append(opts, problem.WithAdditional(fields))

	return problem.New(status, detail, opts...).SetIncludeStackTrace(r.stackTraces)
}

// chainMetadata merges the problem metadata of every problem-aware link.
// Outer links win for the type, the title and each additional field.
func chainMetadata(se *problem.StructuredError) problem.Metadata {
	var links []*problem.Metadata
	for link := se; link != nil; link = link.Cause {
		if link.Problem != nil {
			links = append(links, link.Problem)
		}
	}

	merged := problem.Metadata{AdditionalDetails: map[string]any{}}
	for i := len(links) - 1; i >= 0; i-- {
		if links[i].Type != "" {
			merged.Type = links[i].Type
		}
		if links[i].Title != "" {
			merged.Title = links[i].Title
		}
		maps.Copy(merged.AdditionalDetails, links[i].AdditionalDetails)
	}
	return merged
}

func (r *Responder) newTextProblem(req *http.Request, status int, detail string) *problem.Problem {
	meta := r.metadata(status)
	fields := make(map[string]any)
	r.addRequestFields(fields, req)

	opts := []problem.Option{problem.WithAdditional(fields)}
	if meta.TypeURI != "" {
		opts = append(opts, problem.WithType(meta.TypeURI))
	}
	if title := titleFor(meta, status, ""); title != "" {
		opts = append(opts, problem.WithTitle(title))
	}
	return problem.New(status, problem.Text(detail), opts...)
}

// titleFor returns the configured title. A type derived from the base URL
// hides the status table of the problem package, so the standard status
// text is used instead.
func titleFor(m StatusMetadata, status int, ownType string) string {
	if m.Title != "" {
		return m.Title
	}
	if ownType == "" && m.TypeURI != "" {
		return http.StatusText(status)
	}
	return ""
}

func (r *Responder) addRequestFields(fields map[string]any, req *http.Request) {
	if instance := requestInstance(req); instance != "" {
		fields[FieldInstance] = instance
	}
	fields[FieldTraceID] = newTraceID()
	fields[FieldTimestamp] = time.Now().UTC().Format(time.RFC3339)
}

func (r *Responder) logProblem(req *http.Request, p *problem.Problem, err error, msgs []string) {
	status := p.ResolveStatus()
	meta := r.metadata(status)

	traceID, _ := p.Get(FieldTraceID)
	logger := r.logger().With(
		"error", errorText(err, p),
		"traceId", traceID,
		"status", status,
		"type", p.Type(),
	)
	if len(msgs) > 0 {
		logger = logger.With("logMessages", msgs)
	}
	logger.Log(requestContext(req), meta.LogLevel, meta.LogMsg)
}

func errorText(err error, p *problem.Problem) string {
	if err != nil {
		return err.Error()
	}
	return p.ResolveDetail()
}

// httpStatus maps the resolved problem status onto a status line. Error
// codes are not range checked by the problem package, so anything outside
// 100..599 is sent as 500.
func httpStatus(p *problem.Problem) int {
	status := p.ResolveStatus()
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}
