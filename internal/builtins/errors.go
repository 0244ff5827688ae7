package builtins

import (
	"github.com/cwbudde/ecmalite/internal/interp"
	"github.com/cwbudde/ecmalite/internal/value"
)

// throwType, throwRange, and throwSyntax build the three error shapes a
// builtin raises on its own account (a user Throw always goes through
// interp.ThrowValue directly with whatever value the script threw).
func throwType(message string) error {
	return interp.ThrowValue(interp.NewErrorObject("TypeError", message))
}

func throwRange(message string) error {
	return interp.ThrowValue(interp.NewErrorObject("RangeError", message))
}

func throwSyntax(message string) error {
	return interp.ThrowValue(interp.NewErrorObject("SyntaxError", message))
}

// errorConstructor builds the callable/newable for Error and its named
// subtypes (TypeError, RangeError, ReferenceError, SyntaxError): called with
// or without `new`, it returns the same plain { name, message } object, with
// message defaulting to the empty string.
func errorConstructor(name string) *Native {
	return NewNative(name, func(call value.Invoker, this value.Value, args []value.Value) (value.Value, error) {
		msg := ""
		if len(args) > 0 && args[0].Kind() != value.KindUndefined {
			msg = value.ToString(args[0])
		}
		return interp.NewErrorObject(name, msg), nil
	})
}
