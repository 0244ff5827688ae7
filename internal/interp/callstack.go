package interp

import (
	"github.com/cwbudde/ecmalite/internal/errors"
	"github.com/cwbudde/ecmalite/internal/token"
)

// CallStack tracks active function calls with a push/pop discipline: the
// interpreter pushes a frame before evaluating a function body and pops it
// on the way out, so an uncaught Throw that reaches the program root can be
// annotated with a full errors.StackTrace.
type CallStack struct {
	frames []errors.StackFrame
	max    int
}

// NewCallStack creates an empty call stack bounded at max frames. A call
// that would exceed max reports a stack-overflow error instead of recursing
// into the Go stack unbounded.
func NewCallStack(max int) *CallStack {
	return &CallStack{max: max}
}

// Push adds a frame, returning false if doing so would exceed the max depth.
func (cs *CallStack) Push(functionName, fileName string, pos token.Position) bool {
	if len(cs.frames) >= cs.max {
		return false
	}
	cs.frames = append(cs.frames, errors.NewStackFrame(functionName, fileName, &pos))
	return true
}

// Pop removes the most recently pushed frame.
func (cs *CallStack) Pop() {
	if len(cs.frames) == 0 {
		return
	}
	cs.frames = cs.frames[:len(cs.frames)-1]
}

// Depth returns the current number of live frames.
func (cs *CallStack) Depth() int { return len(cs.frames) }

// Snapshot returns a copy of the current stack as an errors.StackTrace,
// suitable for attaching to a thrown error that reaches the program root.
func (cs *CallStack) Snapshot() errors.StackTrace {
	trace := make(errors.StackTrace, len(cs.frames))
	copy(trace, cs.frames)
	return trace
}
