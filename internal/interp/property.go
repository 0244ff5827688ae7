package interp

import (
	"strconv"

	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/value"
)

// isNullish reports whether v is Null or Undefined — the receiver condition
// optional chaining short-circuits on.
func isNullish(v value.Value) bool {
	return v == nil || v.Kind() == value.KindUndefined || v.Kind() == value.KindNull
}

// evalMember evaluates a MemberDot/MemberBracket node to its value. The
// second return reports whether this link's member-expression chain has
// already short-circuited — either this node's own "?." on a nullish
// receiver, or an upstream "?." earlier in the same chain — in which case
// the first return is always value.Undefined and no further property lookup
// happened.
func (ip *Interpreter) evalMember(node *ast.Node, ctx *Context) (value.Value, bool) {
	recv, shortCircuited := ip.evalChainOperand(node.Child(0), ctx)
	if ctx.IsStopped() {
		return value.Undefined, false
	}
	if shortCircuited {
		return value.Undefined, true
	}
	if node.Flag && isNullish(recv) {
		return value.Undefined, true
	}

	var key string
	if node.Kind == ast.MemberDot {
		key = node.Tok.Literal
	} else {
		idx := ip.evalExpr(node.Child(1), ctx)
		if ctx.IsStopped() {
			return value.Undefined, false
		}
		key = value.ToString(idx)
	}

	v, err := ip.getProperty(recv, key)
	if err != nil {
		ctx.StopThrow(valueFromError(err))
		return value.Undefined, false
	}
	return v, false
}

// evalChainOperand evaluates node, which may itself be a further link
// (MemberDot/MemberBracket/CallExpr) in the same optional-chaining
// expression, propagating its short-circuit signal rather than re-deriving
// it from the resulting Undefined — which would be indistinguishable from a
// receiver that legitimately evaluated to Undefined.
func (ip *Interpreter) evalChainOperand(node *ast.Node, ctx *Context) (value.Value, bool) {
	switch node.Kind {
	case ast.MemberDot, ast.MemberBracket:
		return ip.evalMember(node, ctx)
	case ast.CallExpr:
		return ip.evalCall(node, ctx)
	default:
		return ip.evalExpr(node, ctx), false
	}
}

// getProperty resolves recv[key]: numeric index into an Array or
// String, direct lookup on an Object, a host-bridge round trip for a
// HostMirror, or a fallback into the fixed builtin method table via the
// installed MethodResolver. Property access on a Null/Undefined receiver is
// a TypeError; an undefined property on any other receiver is Undefined.
func (ip *Interpreter) getProperty(recv value.Value, key string) (value.Value, error) {
	if isNullish(recv) {
		return value.Undefined, ThrowValue(typeError(
			"Cannot read properties of " + value.ToString(recv) + " (reading '" + key + "')"))
	}

	switch r := recv.(type) {
	case *value.Array:
		if key == "length" {
			return value.Narrow(float64(len(r.Elements))), nil
		}
		if idx, err := strconv.Atoi(key); err == nil {
			return r.Get(idx), nil
		}
	case value.Str:
		if key == "length" {
			return value.Narrow(float64(r.Len())), nil
		}
		if idx, err := strconv.Atoi(key); err == nil {
			if idx < 0 || idx >= r.Len() {
				return value.Undefined, nil
			}
			return value.StrFromUnits([]uint16{r.Unit(idx)}), nil
		}
	case *value.Object:
		if v, ok := r.Get(key); ok {
			return v, nil
		}
	case *value.HostMirror:
		if r.Bridge != nil {
			return r.Bridge.Get(r.Target, key)
		}
		return value.Undefined, nil
	}

	if ip.methodResolver != nil {
		if v, ok := ip.methodResolver(recv, key); ok {
			return v, nil
		}
	}
	return value.Undefined, nil
}

// setProperty writes target[key] = v for a MemberDot/MemberBracket
// assignment target. A Null (or Undefined) receiver delegates to
// ctx.Update as an implicit-global write — broadened here to Undefined as
// well, since this path has no way to surface a TypeError of its own.
func (ip *Interpreter) setProperty(ctx *Context, target *ast.Node, v value.Value) {
	recv := ip.evalExpr(target.Child(0), ctx)
	if ctx.IsStopped() {
		return
	}

	var key string
	if target.Kind == ast.MemberDot {
		key = target.Tok.Literal
	} else {
		idx := ip.evalExpr(target.Child(1), ctx)
		if ctx.IsStopped() {
			return
		}
		key = value.ToString(idx)
	}

	if isNullish(recv) {
		ctx.Update(key, v)
		return
	}

	switch r := recv.(type) {
	case *value.Object:
		r.Set(key, v)
	case *value.Array:
		if key == "length" {
			n := int(value.ToNumber(v))
			if n < 0 {
				n = 0
			}
			if n < len(r.Elements) {
				r.Elements = r.Elements[:n]
			} else {
				for len(r.Elements) < n {
					r.Elements = append(r.Elements, value.Null)
				}
			}
			return
		}
		if idx, err := strconv.Atoi(key); err == nil {
			r.Set(idx, v)
		}
	case *value.HostMirror:
		if r.Bridge != nil {
			_ = r.Bridge.Set(r.Target, key, v)
		}
	}
}
