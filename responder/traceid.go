package responder

import "github.com/oklog/ulid/v2"

// newTraceID returns a ULID. ulid.Make draws from a process-wide monotonic
// source, so ids created within one millisecond still sort in creation order.
func newTraceID() string {
	return ulid.Make().String()
}
