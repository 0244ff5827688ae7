package interp

import (
	"strconv"

	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/token"
	"github.com/cwbudde/ecmalite/internal/value"
)

// binder is how destructure delivers a single resolved (leaf, value) pair:
// declareBind creates a new local binding (var/let/const and function
// params), assignBind writes through an existing binding or a member
// expression (plain "=" destructuring assignment).
type binder func(ctx *Context, target *ast.Node, val value.Value)

// bindPattern destructure-binds pattern as a new declaration (let/const,
// function parameters, a catch binding) into ctx itself.
func (ip *Interpreter) bindPattern(ctx *Context, pattern *ast.Node, val value.Value) {
	ip.destructure(ctx, pattern, val, ip.declareBind)
}

// bindVarPattern destructure-binds pattern as a "var" declaration: every
// leaf binds into ctx.varScope() — the nearest enclosing function (or
// global) context — rather than whatever block context is currently active,
// so the binding outlives the block and is shared across every iteration of
// a loop it's declared inside.
func (ip *Interpreter) bindVarPattern(ctx *Context, pattern *ast.Node, val value.Value) {
	ip.destructure(ctx, pattern, val, ip.declareVarBind)
}

// assignTo destructure-assigns pattern against already-declared bindings or
// member-expression targets.
func (ip *Interpreter) assignTo(ctx *Context, pattern *ast.Node, val value.Value) {
	ip.destructure(ctx, pattern, val, ip.assignBind)
}

func (ip *Interpreter) declareBind(ctx *Context, target *ast.Node, val value.Value) {
	if target.Kind != ast.Ident {
		return
	}
	ctx.Put(target.Tok.Literal, val)
}

func (ip *Interpreter) declareVarBind(ctx *Context, target *ast.Node, val value.Value) {
	if target.Kind != ast.Ident {
		return
	}
	ctx.varScope().Put(target.Tok.Literal, val)
}

func (ip *Interpreter) assignBind(ctx *Context, target *ast.Node, val value.Value) {
	switch target.Kind {
	case ast.Ident:
		ctx.Update(target.Tok.Literal, val)
		if l := ctx.Listener(); l != nil {
			l.OnVariableWrite(ctx, VarVar, target.Tok.Literal, val)
		}
	case ast.MemberDot, ast.MemberBracket:
		ip.setProperty(ctx, target, val)
	}
}

// destructure recursively binds pattern against val, reusing the same node
// kinds (ArrayLit, ObjectLit, Property, Spread, Assignment) that their
// expression counterparts use — only the leaf delivery differs
// between binding a new name and assigning through an existing one.
func (ip *Interpreter) destructure(ctx *Context, pattern *ast.Node, val value.Value, bind binder) {
	if pattern == nil {
		return
	}
	switch pattern.Kind {
	case ast.Ident, ast.MemberDot, ast.MemberBracket:
		bind(ctx, pattern, val)
	case ast.ArrayLit:
		ip.destructureArray(ctx, pattern, val, bind)
	case ast.ObjectLit:
		ip.destructureObject(ctx, pattern, val, bind)
	case ast.Assignment:
		target := pattern.Child(0)
		def := pattern.Child(1)
		if val == nil || val.Kind() == value.KindUndefined {
			val = ip.evalExpr(def, ctx)
		}
		ip.destructure(ctx, target, val, bind)
	}
}

func (ip *Interpreter) destructureArray(ctx *Context, pattern *ast.Node, val value.Value, bind binder) {
	elements := value.ForOfValues(val)
	for i, elem := range pattern.Children {
		if elem == nil {
			continue // elision hole: skip the source slot entirely
		}
		if elem.Kind == ast.Spread {
			var remaining []value.Value
			if i < len(elements) {
				remaining = append(remaining, elements[i:]...)
			}
			ip.destructure(ctx, elem.Child(0), value.NewArray(remaining...), bind)
			break
		}
		var v value.Value = value.Undefined
		if i < len(elements) {
			v = elements[i]
		}
		ip.destructure(ctx, elem, v, bind)
	}
}

func (ip *Interpreter) destructureObject(ctx *Context, pattern *ast.Node, val value.Value, bind binder) {
	// Named sub-patterns bind first, left to right, regardless of where
	// ...rest falls among pattern.Children — rest must only ever see
	// properties that weren't already claimed by a named property.
	used := make(map[string]bool)
	var restProp *ast.Node
	for _, prop := range pattern.Children {
		if prop.Kind == ast.Spread {
			restProp = prop
			continue
		}
		keyNode := prop.Child(0)
		valTarget := prop.Child(1)
		key := ip.propKeyString(ctx, keyNode, prop.Flag)
		used[key] = true
		ip.destructure(ctx, valTarget, getIndexed(val, key), bind)
	}
	if restProp == nil {
		return
	}
	rest := value.NewObject()
	if o, ok := val.(*value.Object); ok {
		for _, k := range o.Keys() {
			if used[k] {
				continue
			}
			v, _ := o.Get(k)
			rest.Set(k, v)
		}
	}
	ip.destructure(ctx, restProp.Child(0), rest, bind)
}

// propKeyString resolves a Property's key node to its string form: a
// computed key ("[expr]:") evaluates expr, a plain key reads the
// identifier/string/number literal directly.
func (ip *Interpreter) propKeyString(ctx *Context, keyNode *ast.Node, computed bool) string {
	if computed {
		return value.ToString(ip.evalExpr(keyNode, ctx))
	}
	switch keyNode.Kind {
	case ast.StringLit:
		return token.Unquote(keyNode.Tok.Literal)
	default:
		return keyNode.Tok.Literal
	}
}

// getIndexed reads a property by string key from an Object or Array,
// without going through the full property-accessor machinery (property.go)
// — destructuring sources are always plain values, never optional-chained
// or host-mirrored.
func getIndexed(val value.Value, key string) value.Value {
	switch x := val.(type) {
	case *value.Object:
		if v, ok := x.Get(key); ok {
			return v
		}
		return value.Undefined
	case *value.Array:
		if key == "length" {
			return value.Narrow(float64(len(x.Elements)))
		}
		if idx, err := strconv.Atoi(key); err == nil {
			return x.Get(idx)
		}
		return value.Undefined
	default:
		return value.Undefined
	}
}
