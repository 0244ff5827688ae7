// Package builtins supplies the fixed global objects and builtin-method
// table: Array, Object, String, Number, Math, Date, JSON, RegExp,
// Error/TypeError, and the bare globals (parseInt, Infinity, NaN, console).
// It depends on internal/interp only for Context/Interpreter
// wiring and the ThrowValue/NewErrorObject error channel — never the other
// way around, so internal/interp stays ignorant of what, if anything, is
// installed on top of it.
package builtins

import "github.com/cwbudde/ecmalite/internal/value"

// NativeFunc is the Go-level shape every builtin callable wraps: the same
// (Invoker, this, args) -> (Value, error) signature value.Function.Call
// uses, so a Native is indistinguishable from a user Closure at call sites.
type NativeFunc func(call value.Invoker, this value.Value, args []value.Value) (value.Value, error)

// Native is a builtin function or method, bound to its Go implementation.
// Constructors (Array, Object, Date, RegExp, Error, TypeError) and free
// functions (parseInt) are Natives with no bound receiver; instance methods
// returned by the method resolver (push, indexOf, toFixed, ...) are Natives
// that close over their receiver instead of reading it from "this".
type Native struct {
	name string
	fn   NativeFunc
}

// NewNative wraps fn as a callable Value named name.
func NewNative(name string, fn NativeFunc) *Native {
	return &Native{name: name, fn: fn}
}

func (n *Native) Kind() value.Kind { return value.KindFunction }
func (n *Native) String() string   { return "function " + n.name + "() { [native code] }" }
func (n *Native) Name() string     { return n.name }
func (n *Native) IsArrow() bool    { return false }

func (n *Native) Call(call value.Invoker, this value.Value, args []value.Value) (value.Value, error) {
	return n.fn(call, this, args)
}

// arg returns args[i], or Undefined if the call was made with fewer
// arguments — every builtin reads its parameters through this rather than
// indexing args directly, since ECMAScript calls are never arity-checked at
// the call site.
func arg(args []value.Value, i int) value.Value {
	if i < 0 || i >= len(args) {
		return value.Undefined
	}
	return args[i]
}

// isNullish reports whether v is Null or Undefined, mirroring
// internal/interp's own unexported helper of the same name.
func isNullish(v value.Value) bool {
	return v == nil || v.Kind() == value.KindUndefined || v.Kind() == value.KindNull
}
