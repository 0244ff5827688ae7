package interp

import (
	"github.com/cwbudde/ecmalite/internal/errors"
	"github.com/cwbudde/ecmalite/internal/value"
)

// ThrownError wraps a catchable JS value as a Go error, the channel
// value.Function.Call uses to carry a Throw past a function boundary (the
// call stack unwinds normally through return as []any Go call frames, but
// the thrown *value* needs to reach the caller's Context.StopThrow).
type ThrownError struct {
	Value value.Value
}

func (t *ThrownError) Error() string { return value.ToString(t.Value) }

// ThrowValue wraps v as a Go error for a Function.Call to return.
func ThrowValue(v value.Value) error { return &ThrownError{Value: v} }

// NewErrorObject builds the Object shape used for runtime errors: a plain
// object carrying "name" and "message".
func NewErrorObject(name, message string) *value.Object {
	obj := value.NewObject()
	obj.Set("name", value.NewStr(name))
	obj.Set("message", value.NewStr(message))
	return obj
}

// valueFromError converts any error returned by a Function.Call (or any
// other fallible operation) into a catchable thrown value: unwraps a
// ThrownError back to its original value, or wraps any other error's
// message into a generic Error object.
func valueFromError(err error) value.Value {
	if te, ok := err.(*ThrownError); ok {
		return te.Value
	}
	return NewErrorObject("Error", err.Error())
}

// typeError and referenceError are the two error kinds the interpreter
// itself raises (property access on null/undefined, and reading an unbound
// identifier in non-typeof position).
func typeError(message string) value.Value {
	return NewErrorObject("TypeError", message)
}

func referenceError(message string) value.Value {
	return NewErrorObject("ReferenceError", message)
}

// UncaughtError is what RunProgram returns when a Throw reaches the program
// root unconsumed by any try/catch. It carries both the thrown value and the call-stack
// snapshot captured at the moment it escaped.
type UncaughtError struct {
	Value value.Value
	Stack errors.StackTrace
}

func (e *UncaughtError) Error() string {
	msg := value.ToString(e.Value)
	if len(e.Stack) == 0 {
		return msg
	}
	return msg + "\n" + e.Stack.Reverse().String()
}
