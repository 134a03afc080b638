package responder

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewTraceIDIsSortableULID(t *testing.T) {
	prev := newTraceID()
	for range 100 {
		next := newTraceID()
		if _, err := ulid.ParseStrict(next); err != nil {
			t.Fatalf("invalid trace id %q: %v", next, err)
		}
		if next <= prev {
			t.Fatalf("trace ids out of order: %q then %q", prev, next)
		}
		prev = next
	}
}
