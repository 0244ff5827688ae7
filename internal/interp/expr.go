package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/token"
	"github.com/cwbudde/ecmalite/internal/value"
)

// evalExpr dispatches node's expression kind. Every sub-evaluator
// checks ctx.IsStopped() after each nested evalExpr call and short-circuits
// on a Throw, the same discipline statement.go uses for statements.
func (ip *Interpreter) evalExpr(node *ast.Node, ctx *Context) value.Value {
	if node == nil {
		return value.Undefined
	}
	ip.notify(ExpressionEnter, ctx, node)
	defer ip.notify(ExpressionExit, ctx, node)

	switch node.Kind {
	case ast.NumberLit:
		return parseNumberLiteral(node.Tok.Literal)
	case ast.StringLit:
		return value.NewStr(token.Unquote(node.Tok.Literal))
	case ast.BoolLit:
		return value.BoolOf(node.Tok.Literal == "true")
	case ast.NullLit:
		return value.Null
	case ast.UndefinedLit:
		return value.Undefined
	case ast.ThisExpr:
		return ctx.This()
	case ast.RegexLit:
		return ip.evalRegexLiteral(node, ctx)
	case ast.Ident:
		return ip.evalIdent(node, ctx)
	case ast.TemplateLit:
		return ip.evalTemplateLiteral(node, ctx)
	case ast.ArrayLit:
		return ip.evalArrayLiteral(node, ctx)
	case ast.ObjectLit:
		return ip.evalObjectLiteral(node, ctx)
	case ast.FunctionExpr, ast.ArrowFunction:
		name := ""
		if node.Kind == ast.FunctionExpr {
			if n := node.Child(0); n != nil {
				name = n.Tok.Literal
			}
		}
		return ip.newClosure(node, name, ctx)
	case ast.Assignment:
		return ip.evalAssignment(node, ctx)
	case ast.Conditional:
		test := ip.evalExpr(node.Child(0), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		if value.Truthy(test) {
			return ip.evalExpr(node.Child(1), ctx)
		}
		return ip.evalExpr(node.Child(2), ctx)
	case ast.Logical:
		return ip.evalLogical(node, ctx)
	case ast.Binary:
		return ip.evalBinary(node, ctx)
	case ast.Unary:
		return ip.evalUnary(node, ctx)
	case ast.UpdateExpr:
		return ip.evalUpdate(node, ctx)
	case ast.CallExpr:
		v, _ := ip.evalCall(node, ctx)
		return v
	case ast.NewExpr:
		return ip.evalNew(node, ctx)
	case ast.MemberDot, ast.MemberBracket:
		v, _ := ip.evalMember(node, ctx)
		return v
	case ast.SequenceExpr:
		var last value.Value = value.Undefined
		for _, c := range node.Children {
			last = ip.evalExpr(c, ctx)
			if ctx.IsStopped() {
				return value.Undefined
			}
		}
		return last
	default:
		return value.Undefined
	}
}

func parseNumberLiteral(lit string) value.Value {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		n, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			return value.Narrow(math.NaN())
		}
		return value.Narrow(float64(n))
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return value.Narrow(math.NaN())
	}
	return value.Narrow(f)
}

func (ip *Interpreter) evalRegexLiteral(node *ast.Node, ctx *Context) value.Value {
	source, flags := splitRegexLiteral(node.Tok.Literal)
	re, err := value.NewRegex(source, flags)
	if err != nil {
		ctx.StopThrow(typeError(err.Error()))
		return value.Undefined
	}
	return re
}

// splitRegexLiteral separates a raw "/pattern/flags" token literal into its
// source and flags, tracking character-class brackets the same way the
// lexer's scanRegex does so an escaped or in-class '/' isn't mistaken for
// the closing delimiter.
func splitRegexLiteral(lit string) (source, flags string) {
	if len(lit) < 2 {
		return "", ""
	}
	runes := []rune(lit)
	inClass := false
	i := 1
	for i < len(runes) {
		switch {
		case runes[i] == '\\' && i+1 < len(runes):
			i += 2
			continue
		case runes[i] == '[':
			inClass = true
		case runes[i] == ']':
			inClass = false
		case runes[i] == '/' && !inClass:
			return string(runes[1:i]), string(runes[i+1:])
		}
		i++
	}
	return string(runes[1:]), ""
}

// evalIdent resolves a bare identifier, raising a ReferenceError for an
// unbound name — except under typeof, which evalTypeof special-cases before
// ever reaching here.
func (ip *Interpreter) evalIdent(node *ast.Node, ctx *Context) value.Value {
	v, ok := ctx.Get(node.Tok.Literal)
	if !ok {
		ctx.StopThrow(referenceError(node.Tok.Literal + " is not defined"))
		return value.Undefined
	}
	return v
}

// evalTemplateLiteral concatenates literal TemplateSpan segments with
// stringified interpolated values in order. Interpolating a value that
// evaluates to Undefined is a hard error, surfaced as a TypeError rather
// than the literal string "undefined"; an unbound name has already raised
// evalIdent's ReferenceError before that check.
func (ip *Interpreter) evalTemplateLiteral(node *ast.Node, ctx *Context) value.Value {
	var sb strings.Builder
	for _, c := range node.Children {
		if c.Kind == ast.TemplateSpan {
			sb.WriteString(token.DecodeEscapes(c.Tok.Literal))
			continue
		}
		v := ip.evalExpr(c, ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		if v.Kind() == value.KindUndefined {
			ctx.StopThrow(typeError(templateExprName(c) + " is not defined"))
			return value.Undefined
		}
		sb.WriteString(value.ToString(v))
	}
	return value.NewStr(sb.String())
}

func templateExprName(n *ast.Node) string {
	if n.Kind == ast.Ident {
		return n.Tok.Literal
	}
	return "value"
}

func (ip *Interpreter) evalArrayLiteral(node *ast.Node, ctx *Context) value.Value {
	elements := make([]value.Value, 0, len(node.Children))
	for _, c := range node.Children {
		if c == nil {
			elements = append(elements, value.Null)
			continue
		}
		if c.Kind == ast.Spread {
			sv := ip.evalExpr(c.Child(0), ctx)
			if ctx.IsStopped() {
				return value.Undefined
			}
			elements = append(elements, value.ForOfValues(sv)...)
			continue
		}
		v := ip.evalExpr(c, ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		elements = append(elements, v)
	}
	return value.NewArray(elements...)
}

func (ip *Interpreter) evalObjectLiteral(node *ast.Node, ctx *Context) value.Value {
	obj := value.NewObject()
	for _, p := range node.Children {
		if p.Kind == ast.Spread {
			sv := ip.evalExpr(p.Child(0), ctx)
			if ctx.IsStopped() {
				return value.Undefined
			}
			if o, ok := sv.(*value.Object); ok {
				for _, k := range o.Keys() {
					v, _ := o.Get(k)
					obj.Set(k, v)
				}
			}
			continue
		}
		key := ip.propKeyString(ctx, p.Child(0), p.Flag)
		if ctx.IsStopped() {
			return value.Undefined
		}
		v := ip.evalExpr(p.Child(1), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		obj.Set(key, v)
	}
	return obj
}

// evalAssignment handles plain "=" (whose target may be a destructuring
// pattern, reusing the same node kinds a binding pattern parses to) and
// every compound assignment operator (whose target is always a simple
// reference).
func (ip *Interpreter) evalAssignment(node *ast.Node, ctx *Context) value.Value {
	target, rhs := node.Child(0), node.Child(1)
	op := node.Tok.Kind

	if op == token.ASSIGN {
		v := ip.evalExpr(rhs, ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		ip.assignTo(ctx, target, v)
		return v
	}

	if op == token.LOGIC_AND_ASSIGN || op == token.LOGIC_OR_ASSIGN || op == token.NULLISH_ASSIGN {
		cur := ip.evalExpr(target, ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		switch op {
		case token.LOGIC_AND_ASSIGN:
			if !value.Truthy(cur) {
				return cur
			}
		case token.LOGIC_OR_ASSIGN:
			if value.Truthy(cur) {
				return cur
			}
		case token.NULLISH_ASSIGN:
			if !isNullish(cur) {
				return cur
			}
		}
		v := ip.evalExpr(rhs, ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		ip.assignTo(ctx, target, v)
		return v
	}

	cur := ip.evalExpr(target, ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	v := ip.evalExpr(rhs, ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	result := applyCompoundOp(op, cur, v)
	ip.assignTo(ctx, target, result)
	return result
}

func applyCompoundOp(op token.Kind, a, b value.Value) value.Value {
	switch op {
	case token.PLUS_ASSIGN:
		return value.Add(a, b)
	case token.MINUS_ASSIGN:
		return value.Sub(a, b)
	case token.STAR_ASSIGN:
		return value.Mul(a, b)
	case token.SLASH_ASSIGN:
		return value.Div(a, b)
	case token.PERCENT_ASSIGN:
		return value.Mod(a, b)
	case token.STAR_STAR_ASSIGN:
		return value.Pow(a, b)
	case token.SHL_ASSIGN:
		return value.Shl(a, b)
	case token.SHR_ASSIGN:
		return value.Shr(a, b)
	case token.USHR_ASSIGN:
		return value.Ushr(a, b)
	case token.AND_ASSIGN:
		return value.BitAnd(a, b)
	case token.OR_ASSIGN:
		return value.BitOr(a, b)
	case token.XOR_ASSIGN:
		return value.BitXor(a, b)
	default:
		return value.Undefined
	}
}

func (ip *Interpreter) evalLogical(node *ast.Node, ctx *Context) value.Value {
	left := ip.evalExpr(node.Child(0), ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	switch node.Tok.Kind {
	case token.LOGIC_AND:
		if !value.Truthy(left) {
			return left
		}
	case token.LOGIC_OR:
		if value.Truthy(left) {
			return left
		}
	case token.QUESTION_QUESTION:
		if !isNullish(left) {
			return left
		}
	}
	return ip.evalExpr(node.Child(1), ctx)
}

func (ip *Interpreter) evalBinary(node *ast.Node, ctx *Context) value.Value {
	left := ip.evalExpr(node.Child(0), ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	right := ip.evalExpr(node.Child(1), ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}

	switch node.Tok.Kind {
	case token.PLUS:
		return value.Add(left, right)
	case token.MINUS:
		return value.Sub(left, right)
	case token.STAR:
		return value.Mul(left, right)
	case token.SLASH:
		return value.Div(left, right)
	case token.PERCENT:
		return value.Mod(left, right)
	case token.STAR_STAR:
		return value.Pow(left, right)
	case token.AMP:
		return value.BitAnd(left, right)
	case token.PIPE:
		return value.BitOr(left, right)
	case token.CARET:
		return value.BitXor(left, right)
	case token.SHL:
		return value.Shl(left, right)
	case token.SHR:
		return value.Shr(left, right)
	case token.USHR:
		return value.Ushr(left, right)
	case token.EQ:
		return value.BoolOf(value.LooseEqual(left, right))
	case token.NEQ:
		return value.BoolOf(!value.LooseEqual(left, right))
	case token.SEQ:
		return value.BoolOf(value.StrictEqual(left, right))
	case token.SNEQ:
		return value.BoolOf(!value.StrictEqual(left, right))
	case token.LT, token.LE, token.GT, token.GE:
		cmp, ok := value.Compare(left, right)
		if !ok {
			return value.False
		}
		switch node.Tok.Kind {
		case token.LT:
			return value.BoolOf(cmp < 0)
		case token.LE:
			return value.BoolOf(cmp <= 0)
		case token.GT:
			return value.BoolOf(cmp > 0)
		default:
			return value.BoolOf(cmp >= 0)
		}
	case token.INSTANCEOF:
		return value.BoolOf(ip.instanceOf(left, right))
	case token.IN:
		return value.BoolOf(hasProperty(left, right))
	default:
		return value.Undefined
	}
}

func (ip *Interpreter) instanceOf(left, right value.Value) bool {
	rightFn, ok := right.(value.Function)
	if !ok {
		return false
	}
	obj, ok := left.(*value.Object)
	if !ok {
		return false
	}
	ctor, ok := obj.Get("constructor")
	if !ok {
		return false
	}
	ctorFn, ok := ctor.(value.Function)
	if !ok {
		return false
	}
	return ctorFn == rightFn
}

func hasProperty(keyVal, obj value.Value) bool {
	key := value.ToString(keyVal)
	switch o := obj.(type) {
	case *value.Object:
		_, ok := o.Get(key)
		return ok
	case *value.Array:
		if key == "length" {
			return true
		}
		idx, err := strconv.Atoi(key)
		return err == nil && idx >= 0 && idx < len(o.Elements)
	default:
		return false
	}
}

func (ip *Interpreter) evalUnary(node *ast.Node, ctx *Context) value.Value {
	op := node.Tok.Kind
	operand := node.Child(0)

	switch op {
	case token.TYPEOF:
		return ip.evalTypeof(operand, ctx)
	case token.DELETE:
		return ip.evalDelete(operand, ctx)
	case token.VOID:
		ip.evalExpr(operand, ctx)
		return value.Undefined
	}

	v := ip.evalExpr(operand, ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	switch op {
	case token.BANG:
		return value.BoolOf(!value.Truthy(v))
	case token.TILDE:
		return value.BitNot(v)
	case token.PLUS:
		return value.Narrow(value.ToNumber(v))
	case token.MINUS:
		return value.Narrow(-value.ToNumber(v))
	default:
		return value.Undefined
	}
}

// evalTypeof never throws: an unbound bare identifier yields "undefined"
// instead of a ReferenceError.
func (ip *Interpreter) evalTypeof(operand *ast.Node, ctx *Context) value.Value {
	if operand.Kind == ast.Ident {
		v, ok := ctx.Get(operand.Tok.Literal)
		if !ok {
			return value.NewStr("undefined")
		}
		return value.NewStr(value.TypeOf(v))
	}
	v := ip.evalExpr(operand, ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	return value.NewStr(value.TypeOf(v))
}

func (ip *Interpreter) evalDelete(operand *ast.Node, ctx *Context) value.Value {
	switch operand.Kind {
	case ast.MemberDot:
		obj := ip.evalExpr(operand.Child(0), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		deleteProperty(obj, operand.Tok.Literal)
		return value.True
	case ast.MemberBracket:
		obj := ip.evalExpr(operand.Child(0), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		idx := ip.evalExpr(operand.Child(1), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		deleteProperty(obj, value.ToString(idx))
		return value.True
	default:
		return value.True
	}
}

func deleteProperty(obj value.Value, key string) {
	switch o := obj.(type) {
	case *value.Object:
		o.Delete(key)
	case *value.Array:
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(o.Elements) {
			o.Elements[idx] = value.Null // a deleted slot is a hole, represented as Null
		}
	}
}

func (ip *Interpreter) evalUpdate(node *ast.Node, ctx *Context) value.Value {
	target := node.Child(0)
	old := ip.evalExpr(target, ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	oldNum := value.ToNumber(old)
	var newNum float64
	if node.Tok.Kind == token.INC {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	newVal := value.Narrow(newNum)
	ip.assignTo(ctx, target, newVal)
	if node.Flag {
		return newVal // prefix: yields the updated value
	}
	return value.Narrow(oldNum) // postfix: yields the pre-update value
}

// evalCall evaluates a call expression: the callee's property access (for a
// method call), the optional-chaining short-circuit, spread-argument
// flattening, and the dispatch to the resolved Function. The second return
// reports whether this call's member-expression chain has already
// short-circuited (see evalChainOperand) — either this call's own "?.()" on
// a nullish callee, or an upstream "?." earlier in the same chain — in which
// case the first return is always value.Undefined and the call never ran.
func (ip *Interpreter) evalCall(node *ast.Node, ctx *Context) (value.Value, bool) {
	calleeNode := node.Child(0)
	var thisVal value.Value = value.Undefined
	var fnVal value.Value

	switch calleeNode.Kind {
	case ast.MemberDot, ast.MemberBracket:
		recv, shortCircuited := ip.evalChainOperand(calleeNode.Child(0), ctx)
		if ctx.IsStopped() {
			return value.Undefined, false
		}
		if shortCircuited {
			return value.Undefined, true
		}
		if calleeNode.Flag && isNullish(recv) {
			return value.Undefined, true
		}
		var key string
		if calleeNode.Kind == ast.MemberDot {
			key = calleeNode.Tok.Literal
		} else {
			idx := ip.evalExpr(calleeNode.Child(1), ctx)
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
		thisVal, fnVal = recv, v
	case ast.CallExpr:
		v, shortCircuited := ip.evalCall(calleeNode, ctx)
		if ctx.IsStopped() {
			return value.Undefined, false
		}
		if shortCircuited {
			return value.Undefined, true
		}
		fnVal = v
	default:
		fnVal = ip.evalExpr(calleeNode, ctx)
		if ctx.IsStopped() {
			return value.Undefined, false
		}
	}

	if node.Flag && isNullish(fnVal) {
		return value.Undefined, true
	}

	args := ip.evalArguments(node.Children[1:], ctx)
	if ctx.IsStopped() {
		return value.Undefined, false
	}

	fn, ok := fnVal.(value.Function)
	if !ok {
		ctx.StopThrow(typeError(calleeDisplayName(calleeNode) + " is not a function"))
		return value.Undefined, false
	}

	result, err := fn.Call(ip, thisVal, args)
	if err != nil {
		ctx.StopThrow(valueFromError(err))
		return value.Undefined, false
	}
	return result, false
}

func (ip *Interpreter) evalArguments(nodes []*ast.Node, ctx *Context) []value.Value {
	args := make([]value.Value, 0, len(nodes))
	for _, a := range nodes {
		if a.Kind == ast.Spread {
			v := ip.evalExpr(a.Child(0), ctx)
			if ctx.IsStopped() {
				return nil
			}
			args = append(args, value.ForOfValues(v)...)
			continue
		}
		v := ip.evalExpr(a, ctx)
		if ctx.IsStopped() {
			return nil
		}
		args = append(args, v)
	}
	return args
}

func calleeDisplayName(node *ast.Node) string {
	switch node.Kind {
	case ast.Ident:
		return node.Tok.Literal
	case ast.MemberDot:
		return node.Tok.Literal
	default:
		return "expression"
	}
}

// evalNew implements simple constructor semantics: a fresh object is
// passed as `this`; if the constructor itself returns an object or array,
// that replaces the fresh object as the result.
func (ip *Interpreter) evalNew(node *ast.Node, ctx *Context) value.Value {
	calleeNode := node.Child(0)
	calleeVal := ip.evalExpr(calleeNode, ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}
	fn, ok := calleeVal.(value.Function)
	if !ok {
		ctx.StopThrow(typeError(calleeDisplayName(calleeNode) + " is not a constructor"))
		return value.Undefined
	}

	args := ip.evalArguments(node.Children[1:], ctx)
	if ctx.IsStopped() {
		return value.Undefined
	}

	this := value.NewObject()
	this.Set("constructor", fn)

	result, err := fn.Call(ip, this, args)
	if err != nil {
		ctx.StopThrow(valueFromError(err))
		return value.Undefined
	}
	if result != nil && (result.Kind() == value.KindObject || result.Kind() == value.KindArray) {
		return result
	}
	return this
}
