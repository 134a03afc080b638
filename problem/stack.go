package problem

import "runtime"

const maxStackDepth = 64

// Frame is a single call site of a captured stack trace.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// StackTracer is implemented by errors that captured the stack at creation.
type StackTracer interface {
	StackTrace() []Frame
}

// callers resolves the stack of the caller, skipping skip additional frames
// above the function that invoked callers.
func callers(skip int) []Frame {
	pc := make([]uintptr, maxStackDepth)
	// +2 skips runtime.Callers and callers itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return []Frame{}
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make([]Frame, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			Function: fr.Function,
			File:     fr.File,
			Line:     fr.Line,
		})
		if !more {
			break
		}
	}
	return out
}

func cloneFrames(frames []Frame) []Frame {
	out := make([]Frame, len(frames))
	copy(out, frames)
	return out
}
