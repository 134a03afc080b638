package problem

import (
	"maps"
	"slices"
	"strings"

	"github.com/drblury/apiproblem/jsonutil"
)

const (
	// ContentType is the media type of a serialized problem payload.
	ContentType = "application/problem+json"

	// DefaultType is the problem type used when none is supplied. Titles are
	// only looked up in the status table while this type is in effect.
	DefaultType = "http://www.w3.org/Protocols/rfc2616/rfc2616-sec10.html"

	// TitleUnknown is the title of last resort.
	TitleUnknown = "Unknown"
)

// Keys of the required members of a serialized problem.
const (
	KeyType   = "type"
	KeyTitle  = "title"
	KeyStatus = "status"
	KeyDetail = "detail"

	// KeyTrace and KeyExceptionStack are written into the additional fields
	// when stack traces are enabled for a structured detail.
	KeyTrace          = "trace"
	KeyExceptionStack = "exception_stack"
)

// Option customises a Problem at construction time. Omitting an option is
// the same as leaving the corresponding value unset.
type Option func(*options)

type options struct {
	problemType *string
	title       *string
	additional  map[string]any
}

// WithType sets the problem type URI.
func WithType(uri string) Option {
	return func(o *options) {
		o.problemType = &uri
	}
}

// WithTitle sets an explicit title, which always wins title resolution.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = &title
	}
}

// WithAdditional supplies extension members. They never override the
// required members when serialized.
func WithAdditional(fields map[string]any) Option {
	return func(o *options) {
		o.additional = fields
	}
}

// Problem is a problem details payload. It is built once per error occasion
// and owned by a single request flow; it is not safe for concurrent use.
//
// Status, title and detail are resolved when read. For a structured detail
// with stack traces enabled, resolving the detail writes the trace and
// exception_stack additional fields.
type Problem struct {
	problemType       string
	status            int
	title             *string
	detail            Detail
	includeStackTrace bool
	additional        map[string]any
}

// New builds a Problem. A status that is not numeric or lies outside
// 100..599 is replaced with 500. When detail is structured and carries
// problem metadata, its type, title and additional fields fill in whatever
// was not supplied through opts.
func New[S StatusInput](status S, detail Detail, opts ...Option) *Problem {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if se := detail.err; se != nil && se.Problem != nil {
		if o.problemType == nil && se.Problem.Type != "" {
			t := se.Problem.Type
			o.problemType = &t
		}
		if o.title == nil && se.Problem.Title != "" {
			t := se.Problem.Title
			o.title = &t
		}
		if len(o.additional) == 0 {
			o.additional = se.Problem.AdditionalDetails
		}
	}

	p := &Problem{
		problemType: DefaultType,
		status:      normalizeStatus(status),
		title:       o.title,
		detail:      detail,
		additional:  maps.Clone(o.additional),
	}
	if o.problemType != nil {
		p.problemType = *o.problemType
	}
	if p.additional == nil {
		p.additional = make(map[string]any)
	}
	return p
}

// SetIncludeStackTrace controls whether a structured detail also reports its
// stack trace and cause chain. It returns p for chaining.
func (p *Problem) SetIncludeStackTrace(include bool) *Problem {
	p.includeStackTrace = include
	return p
}

// IncludeStackTrace reports whether stack traces are enabled.
func (p *Problem) IncludeStackTrace() bool {
	return p.includeStackTrace
}

// Type returns the problem type URI.
func (p *Problem) Type() string {
	return p.problemType
}

// Detail returns the detail as supplied.
func (p *Problem) Detail() Detail {
	return p.detail
}

// Additional returns a copy of the additional fields, including any trace
// fields written by an earlier resolution.
func (p *Problem) Additional() map[string]any {
	return maps.Clone(p.additional)
}

// ResolveStatus returns the status of the payload. For a structured detail
// the error's own non-zero code is used as is, without the range check
// applied at construction, and 500 otherwise. The result is cached in p on
// every call.
func (p *Problem) ResolveStatus() int {
	if se := p.detail.err; se != nil {
		if se.Code != 0 {
			p.status = se.Code
		} else {
			p.status = defaultStatus
		}
	}
	return p.status
}

// ResolveTitle returns, in order of preference: the explicit title, the
// status table phrase while the default type is in effect, the error type
// name for a structured detail, or "Unknown".
func (p *Problem) ResolveTitle() string {
	if p.title != nil {
		return *p.title
	}

	if p.problemType == DefaultType {
		if title, ok := StatusTitle(p.ResolveStatus()); ok {
			return title
		}
	}

	if se := p.detail.err; se != nil {
		return se.TypeName
	}
	return TitleUnknown
}

// ResolveDetail returns the detail text. For a structured detail this is the
// trimmed message of the outermost error; with stack traces enabled it also
// stores the trace and, when there is a cause chain, the exception stack in
// the additional fields.
func (p *Problem) ResolveDetail() string {
	se := p.detail.err
	if se == nil {
		return p.detail.text
	}

	message := strings.TrimSpace(se.Message)
	if !p.includeStackTrace {
		return message
	}

	p.additional[KeyTrace] = se.trace()
	if chain := se.causes(); len(chain) > 0 {
		p.additional[KeyExceptionStack] = chain
	}
	return message
}

// Get looks up a member by name. The four required members match case
// insensitively and return their resolved values. Other names are looked up
// in the additional fields verbatim, then lowercased, then by case-folded
// comparison. Unknown names, and additional fields holding nil, yield an
// *InvalidPropertyError.
func (p *Problem) Get(name string) (any, error) {
	normalized := strings.ToLower(name)
	switch normalized {
	case KeyType:
		return p.Type(), nil
	case KeyStatus:
		return p.ResolveStatus(), nil
	case KeyTitle:
		return p.ResolveTitle(), nil
	case KeyDetail:
		return p.ResolveDetail(), nil
	}

	if v, ok := p.additional[name]; ok && v != nil {
		return v, nil
	}
	if v, ok := p.additional[normalized]; ok && v != nil {
		return v, nil
	}

	keys := slices.Sorted(maps.Keys(p.additional))
	for _, key := range keys {
		if strings.EqualFold(key, name) && p.additional[key] != nil {
			return p.additional[key], nil
		}
	}

	return nil, &InvalidPropertyError{Name: name}
}

// ToMap flattens the payload. Additional fields come first and the required
// members overwrite any additional field with the same key.
func (p *Problem) ToMap() map[string]any {
	required := map[string]any{
		KeyType:   p.problemType,
		KeyTitle:  p.ResolveTitle(),
		KeyStatus: p.ResolveStatus(),
		KeyDetail: p.ResolveDetail(),
	}

	out := make(map[string]any, len(p.additional)+len(required))
	maps.Copy(out, p.additional)
	maps.Copy(out, required)
	return out
}

// MarshalJSON encodes the flattened payload.
func (p *Problem) MarshalJSON() ([]byte, error) {
	return jsonutil.Marshal(p.ToMap())
}
