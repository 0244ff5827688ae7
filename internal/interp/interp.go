package interp

import (
	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/value"
)

// MethodResolver looks up a builtin method by name on a receiver value when
// own-property lookup fails — the fixed built-in method table for
// Array/Object/String prototypes. internal/builtins supplies this to the
// Interpreter at wiring time (pkg/ecma); until it is installed, property
// lookups on builtin receivers beyond their own keys simply resolve to
// Undefined rather than panicking.
type MethodResolver func(receiver value.Value, name string) (value.Value, bool)

// Interpreter walks an *ast.Node program, holding the state shared across
// every evaluation in a run: the call stack, the file name attributed to
// thrown-error stack traces, and the optional builtin-method hook.
type Interpreter struct {
	root           *Context
	callStack      *CallStack
	fileName       string
	methodResolver MethodResolver
}

// New builds an Interpreter rooted at root, attributing thrown-error stack
// traces to fileName and bounding recursion at maxCallDepth call frames.
func New(root *Context, fileName string, maxCallDepth int) *Interpreter {
	return &Interpreter{
		root:      root,
		callStack: NewCallStack(maxCallDepth),
		fileName:  fileName,
	}
}

// SetMethodResolver installs the builtin-method lookup hook the property
// accessor (property.go) consults when own-property lookup misses.
func (ip *Interpreter) SetMethodResolver(r MethodResolver) { ip.methodResolver = r }

// Root returns the interpreter's global context.
func (ip *Interpreter) Root() *Context { return ip.root }

// CallStack exposes the interpreter's call stack, mainly so a host-supplied
// listener or builtin can report its current depth.
func (ip *Interpreter) CallStack() *CallStack { return ip.callStack }

// RunProgram evaluates prog's top-level statements in the root context and
// returns the value of the last expression statement. A Throw that escapes
// every try/catch becomes an *UncaughtError carrying the thrown value and
// the call-stack snapshot at the point it reached the root.
func (ip *Interpreter) RunProgram(prog *ast.Node) (value.Value, error) {
	return ip.RunProgramIn(prog, ip.root)
}

// RunProgramIn evaluates prog's top-level statements in ctx rather than the
// root context — pkg/ecma's Engine.EvalWith uses this to run a program in a child
// scope (globals as parent, host-supplied bindings local to the call) without
// polluting the engine's global bindings.
func (ip *Interpreter) RunProgramIn(prog *ast.Node, ctx *Context) (value.Value, error) {
	var last value.Value = value.Undefined
	for _, stmt := range prog.Children {
		last = ip.evalStatement(stmt, ctx)
		if ctx.ExitFlag() == ExitThrow {
			err := &UncaughtError{Value: ctx.ErrorValue(), Stack: ip.callStack.Snapshot()}
			ctx.Reset()
			return value.Undefined, err
		}
		if ctx.IsStopped() {
			// A bare break/continue/return at the top level has nowhere left
			// to propagate to; treat it as ending the program.
			ctx.Reset()
			break
		}
	}
	return last, nil
}

// Call implements value.Invoker. The Interpreter is the only Invoker this
// package offers: Closure.Call uses its own embedded Interpreter directly,
// and a builtin that needs to invoke a user-supplied callback is handed this
// method via the Invoker parameter of its own Call.
func (ip *Interpreter) Call(fn value.Value, this value.Value, args []value.Value) (value.Value, error) {
	callee, ok := fn.(value.Function)
	if !ok {
		return value.Undefined, ThrowValue(typeError(value.ToString(fn) + " is not a function"))
	}
	return callee.Call(ip, this, args)
}
