package interp

import (
	"fmt"

	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/token"
	"github.com/cwbudde/ecmalite/internal/value"
)

// Closure is a user-defined function value: the parameter list and body AST
// plus the environment it closed over. It implements value.Function so
// internal/builtins can hold and invoke one through that interface without
// depending on this type.
type Closure struct {
	name     string
	params   []*ast.Node
	body     *ast.Node // Block for a normal/arrow function, or a bare expression when exprBody
	declEnv  *Context
	isArrow  bool
	exprBody bool
	pos      token.Position
	ip       *Interpreter
}

func (cl *Closure) Kind() value.Kind { return value.KindFunction }

func (cl *Closure) String() string {
	name := cl.name
	if name == "" {
		name = ""
	}
	return fmt.Sprintf("function %s() { [ecmalite code] }", name)
}

func (cl *Closure) Name() string   { return cl.name }
func (cl *Closure) IsArrow() bool  { return cl.isArrow }

// Call ignores the caller-supplied Invoker: a Closure always evaluates its
// own body through the Interpreter it was created by, which is itself the
// only Invoker implementation this package offers. The parameter exists
// purely to satisfy value.Function, whose contract is shared with
// internal/builtins' Invokers that call back into user-supplied callbacks.
func (cl *Closure) Call(_ value.Invoker, this value.Value, args []value.Value) (value.Value, error) {
	return cl.ip.callClosure(cl, this, args)
}

// newClosure builds a Closure from a FunctionDecl/FunctionExpr/ArrowFunction
// node. name may be empty for an anonymous function expression.
func (ip *Interpreter) newClosure(node *ast.Node, name string, declEnv *Context) *Closure {
	isArrow := node.Kind == ast.ArrowFunction
	exprBody := isArrow && node.Flag

	var params []*ast.Node
	var body *ast.Node
	if isArrow {
		params = node.Children[:len(node.Children)-1]
		body = node.Children[len(node.Children)-1]
	} else {
		// FunctionDecl: [name, params..., body]; FunctionExpr: [name?, params..., body]
		params = node.Children[1 : len(node.Children)-1]
		body = node.Children[len(node.Children)-1]
	}

	return &Closure{
		name:     name,
		params:   params,
		body:     body,
		declEnv:  declEnv,
		isArrow:  isArrow,
		exprBody: exprBody,
		pos:      node.Pos,
		ip:       ip,
	}
}

// callClosure runs cl's body in a fresh function-scoped context chained to
// its declared environment, not the caller's.
func (ip *Interpreter) callClosure(cl *Closure, this value.Value, args []value.Value) (value.Value, error) {
	if !ip.callStack.Push(closureDisplayName(cl.name), ip.fileName, cl.pos) {
		return value.Undefined, ThrowValue(NewErrorObject("RangeError", "Maximum call stack size exceeded"))
	}
	defer ip.callStack.Pop()

	fnCtx := cl.declEnv.NewChild(ScopeFunction)
	if !cl.isArrow {
		fnCtx.SetThis(this)
	}
	ip.bindParams(fnCtx, cl.params, args)

	if l := fnCtx.Listener(); l != nil {
		l.OnFunctionCall(fnCtx, args)
	}

	if cl.exprBody {
		result := ip.evalExpr(cl.body, fnCtx)
		if fnCtx.ExitFlag() == ExitThrow {
			return value.Undefined, ThrowValue(fnCtx.ErrorValue())
		}
		return result, nil
	}

	ip.evalBlockBody(cl.body, fnCtx)
	switch fnCtx.ExitFlag() {
	case ExitReturn:
		return fnCtx.ReturnValue(), nil
	case ExitThrow:
		return value.Undefined, ThrowValue(fnCtx.ErrorValue())
	default:
		return value.Undefined, nil
	}
}

func closureDisplayName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

// bindParams binds positional parameters, defaults, and a trailing rest
// parameter against args.
func (ip *Interpreter) bindParams(ctx *Context, params []*ast.Node, args []value.Value) {
	for i, p := range params {
		if p.Kind == ast.Spread {
			var rest []value.Value
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			ip.bindPattern(ctx, p.Child(0), value.NewArray(rest...))
			return
		}

		var v value.Value = value.Undefined
		if i < len(args) {
			v = args[i]
		}

		if p.Kind == ast.Assignment {
			if v == value.Undefined || v == nil {
				v = ip.evalExpr(p.Child(1), ctx)
			}
			ip.bindPattern(ctx, p.Child(0), v)
			continue
		}

		ip.bindPattern(ctx, p, v)
	}
}
