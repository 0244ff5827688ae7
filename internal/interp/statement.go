package interp

import (
	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/value"
)

// evalStatement dispatches node's statement kind. It returns the completion value for an ExprStmt, Undefined
// for every other kind — RunProgram uses the former to report the program's
// result.
func (ip *Interpreter) evalStatement(node *ast.Node, ctx *Context) value.Value {
	if node == nil {
		return value.Undefined
	}
	ip.notify(StatementEnter, ctx, node)
	defer ip.notify(StatementExit, ctx, node)

	switch node.Kind {
	case ast.ExprStmt:
		return ip.evalExpr(node.Child(0), ctx)

	case ast.EmptyStmt:
		return value.Undefined

	case ast.VarDecl:
		ip.evalVarDecl(node, ctx)
		return value.Undefined

	case ast.Block:
		ip.evalBlock(node, ctx)
		return value.Undefined

	case ast.If:
		test := ip.evalExpr(node.Child(0), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		if value.Truthy(test) {
			ip.evalStatement(node.Child(1), ctx)
		} else if alt := node.Child(2); alt != nil {
			ip.evalStatement(alt, ctx)
		}
		return value.Undefined

	case ast.For:
		ip.evalFor(node, ctx)
		return value.Undefined

	case ast.ForIn:
		ip.evalForInOf(node, ctx, forInKeysAsValues)
		return value.Undefined

	case ast.ForOf:
		ip.evalForInOf(node, ctx, value.ForOfValues)
		return value.Undefined

	case ast.While:
		ip.evalWhile(node, ctx)
		return value.Undefined

	case ast.DoWhile:
		ip.evalDoWhile(node, ctx)
		return value.Undefined

	case ast.Switch:
		ip.evalSwitch(node, ctx)
		return value.Undefined

	case ast.Break:
		ctx.StopBreak()
		return value.Undefined

	case ast.Continue:
		ctx.StopContinue()
		return value.Undefined

	case ast.Return:
		var v value.Value = value.Undefined
		if arg := node.Child(0); arg != nil {
			v = ip.evalExpr(arg, ctx)
			if ctx.IsStopped() {
				return value.Undefined
			}
		}
		ctx.StopReturn(v)
		return value.Undefined

	case ast.Throw:
		v := ip.evalExpr(node.Child(0), ctx)
		if ctx.IsStopped() {
			return value.Undefined
		}
		ctx.StopThrow(v)
		return value.Undefined

	case ast.Try:
		ip.evalTry(node, ctx)
		return value.Undefined

	case ast.FunctionDecl:
		name := node.Child(0).Tok.Literal
		ctx.Put(name, ip.newClosure(node, name, ctx))
		return value.Undefined

	default:
		return value.Undefined
	}
}

// evalStatementList runs stmts in ctx in order, stopping as soon as ctx
// reports an exit flag.
func evalStatementList(ip *Interpreter, stmts []*ast.Node, ctx *Context) {
	for _, s := range stmts {
		ip.evalStatement(s, ctx)
		if ctx.IsStopped() {
			return
		}
	}
}

// evalBlockBody runs a Block node's statements directly in ctx, without
// creating an extra BLOCK-scoped child — used for a function's top-level
// body, whose own FUNCTION-scoped context already serves as the block.
func (ip *Interpreter) evalBlockBody(body *ast.Node, ctx *Context) {
	evalStatementList(ip, body.Children, ctx)
}

// evalBlock runs a nested Block statement in a fresh BLOCK-scoped child of
// ctx, then folds the child's exit state back into ctx.
func (ip *Interpreter) evalBlock(node *ast.Node, ctx *Context) {
	child := ctx.NewChild(ScopeBlock)
	evalStatementList(ip, node.Children, child)
	ctx.UpdateFrom(child)
}

// evalVarDecl binds every declarator in a VarDecl, evaluating each
// initializer (if present) before the binding it feeds. A "var" declarator
// binds into the nearest enclosing function (or global) scope rather than
// ctx itself, so it stays visible once the block it's declared inside exits.
func (ip *Interpreter) evalVarDecl(node *ast.Node, ctx *Context) {
	kind := varKindFromTok(node.Tok.Literal)
	bind := ip.bindPattern
	if kind == VarVar {
		bind = ip.bindVarPattern
	}
	for _, decl := range node.Children {
		pattern, initNode := decl.Child(0), decl.Child(1)
		var v value.Value = value.Undefined
		if initNode != nil {
			v = ip.evalExpr(initNode, ctx)
			if ctx.IsStopped() {
				return
			}
		}
		bind(ctx, pattern, v)
		if l := ctx.Listener(); l != nil && pattern.Kind == ast.Ident {
			l.OnVariableWrite(ctx, kind, pattern.Tok.Literal, v)
		}
	}
}

func varKindFromTok(lit string) VarKind {
	switch lit {
	case "const":
		return VarConst
	case "let":
		return VarLet
	default:
		return VarVar
	}
}

// loopControl reports what the enclosing loop construct should do after one
// iteration's body ran in bodyCtx: Break and Continue are consumed at this
// loop boundary (the caller stops iterating, or resets and continues);
// Return and Throw are left set for the caller to fold into the outer
// context and stop.
func loopControl(bodyCtx *Context) (stop, propagate bool) {
	switch bodyCtx.ExitFlag() {
	case ExitBreak:
		bodyCtx.Reset()
		return true, false
	case ExitContinue:
		bodyCtx.Reset()
		return false, false
	case ExitReturn, ExitThrow:
		return true, true
	default:
		return false, false
	}
}

// evalFor implements the C-style for loop. A let/const declaration in the
// init clause forces a fresh inner context per iteration, snapshotting the
// previous iteration's ending binding values forward; a var
// declaration, or no declaration at all, shares one context across every
// iteration.
func (ip *Interpreter) evalFor(node *ast.Node, ctx *Context) {
	initNode, testNode, updateNode, body := node.Child(0), node.Child(1), node.Child(2), node.Child(3)

	outer := ctx.NewChild(ScopeBlock)
	isLexical := initNode != nil && initNode.Kind == ast.VarDecl && initNode.Tok.Literal != "var"

	if initNode != nil {
		if initNode.Kind == ast.VarDecl {
			ip.evalVarDecl(initNode, outer)
		} else {
			ip.evalExpr(initNode, outer)
		}
		if outer.IsStopped() {
			ctx.UpdateFrom(outer)
			return
		}
	}

	cur := outer
	idx := 0
	for {
		if isLexical {
			fresh := ctx.NewChild(ScopeBlock)
			for _, k := range cur.keys {
				fresh.Put(k, cur.bindings[k])
			}
			cur = fresh
		}
		cur.SetIterationIndex(idx)

		if testNode != nil {
			tv := ip.evalExpr(testNode, cur)
			if cur.IsStopped() {
				ctx.UpdateFrom(cur)
				return
			}
			if !value.Truthy(tv) {
				break
			}
		}

		ip.evalStatement(body, cur)
		stop, propagate := loopControl(cur)
		if propagate {
			ctx.UpdateFrom(cur)
			return
		}
		if stop {
			break
		}

		if updateNode != nil {
			ip.evalExpr(updateNode, cur)
			if cur.IsStopped() {
				ctx.UpdateFrom(cur)
				return
			}
		}
		idx++
	}
}

// iterSource produces the sequence of values a for-in or for-of loop walks:
// for-in walks an iterable's keys (as strings), for-of its values.
type iterSource func(value.Value) []value.Value

// forInKeysAsValues adapts value.ForInKeys's []string result to the
// []value.Value shape evalForInOf shares between for-in and for-of.
func forInKeysAsValues(v value.Value) []value.Value {
	keys := value.ForInKeys(v)
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.NewStr(k)
	}
	return out
}

// evalForInOf implements both for-in (source = keys, as strings) and for-of
// (source = values) — they differ only in what they iterate and share every
// other mechanic: a fresh BLOCK context per iteration, binding the loop
// target against the current element, and the break/continue/return/throw
// handling common to every loop form.
func (ip *Interpreter) evalForInOf(node *ast.Node, ctx *Context, source iterSource) {
	leftNode, rightNode, body := node.Child(0), node.Child(1), node.Child(2)

	rv := ip.evalExpr(rightNode, ctx)
	if ctx.IsStopped() {
		return
	}

	for idx, elem := range source(rv) {
		iterCtx := ctx.NewChild(ScopeBlock)
		iterCtx.SetIterationIndex(idx)
		ip.bindForTarget(iterCtx, leftNode, elem)
		if iterCtx.IsStopped() {
			ctx.UpdateFrom(iterCtx)
			return
		}

		ip.evalStatement(body, iterCtx)
		stop, propagate := loopControl(iterCtx)
		if propagate {
			ctx.UpdateFrom(iterCtx)
			return
		}
		if stop {
			return
		}
	}
}

// bindForTarget binds one loop iteration's element against a for-in/for-of
// loop's left-hand side, which is either a fresh declaration ("for (let x of
// ...)", "for (var x of ...)") or an existing assignment target ("for (x of
// ...)"). A "var" target hoists to the enclosing function/global scope the
// same as any other var declaration, so every iteration writes the same
// binding instead of a fresh per-iteration one.
func (ip *Interpreter) bindForTarget(ctx *Context, left *ast.Node, v value.Value) {
	if left.Kind == ast.VarDecl {
		pattern := left.Child(0).Child(0)
		if left.Tok.Literal == "var" {
			ip.bindVarPattern(ctx, pattern, v)
		} else {
			ip.bindPattern(ctx, pattern, v)
		}
		return
	}
	ip.assignTo(ctx, left, v)
}

func (ip *Interpreter) evalWhile(node *ast.Node, ctx *Context) {
	testNode, body := node.Child(0), node.Child(1)
	idx := 0
	for {
		tv := ip.evalExpr(testNode, ctx)
		if ctx.IsStopped() {
			return
		}
		if !value.Truthy(tv) {
			return
		}
		iterCtx := ctx.NewChild(ScopeBlock)
		iterCtx.SetIterationIndex(idx)
		ip.evalStatement(body, iterCtx)
		stop, propagate := loopControl(iterCtx)
		if propagate {
			ctx.UpdateFrom(iterCtx)
			return
		}
		if stop {
			return
		}
		idx++
	}
}

func (ip *Interpreter) evalDoWhile(node *ast.Node, ctx *Context) {
	body, testNode := node.Child(0), node.Child(1)
	idx := 0
	for {
		iterCtx := ctx.NewChild(ScopeBlock)
		iterCtx.SetIterationIndex(idx)
		ip.evalStatement(body, iterCtx)
		stop, propagate := loopControl(iterCtx)
		if propagate {
			ctx.UpdateFrom(iterCtx)
			return
		}
		if stop {
			return
		}

		tv := ip.evalExpr(testNode, ctx)
		if ctx.IsStopped() {
			return
		}
		if !value.Truthy(tv) {
			return
		}
		idx++
	}
}

// evalSwitch evaluates the discriminant once, finds the first case whose
// test is strictly equal (falling back to a default clause at any
// position), then falls through every remaining clause until a break stops
// it.
func (ip *Interpreter) evalSwitch(node *ast.Node, ctx *Context) {
	dv := ip.evalExpr(node.Child(0), ctx)
	if ctx.IsStopped() {
		return
	}

	switchCtx := ctx.NewChild(ScopeBlock)
	cases := node.Children[1:]
	matchedIdx, defaultIdx := -1, -1

	for i, c := range cases {
		if c.Child(0) == nil {
			defaultIdx = i
			continue
		}
		cv := ip.evalExpr(c.Child(0), switchCtx)
		if switchCtx.IsStopped() {
			ctx.UpdateFrom(switchCtx)
			return
		}
		if value.StrictEqual(dv, cv) {
			matchedIdx = i
			break
		}
	}

	start := matchedIdx
	if start == -1 {
		start = defaultIdx
	}
	if start == -1 {
		return
	}

	for i := start; i < len(cases); i++ {
		evalStatementList(ip, cases[i].Children[1:], switchCtx)
		if switchCtx.IsStopped() {
			break
		}
	}

	if switchCtx.ExitFlag() == ExitBreak {
		switchCtx.Reset()
	}
	ctx.UpdateFrom(switchCtx)
}

// evalTry runs the try block, dispatches a Throw to the catch clause if one
// exists, and always runs the finally clause last — a throw or other exit
// from finally replaces whatever was in flight, matching a real finally
// block's override semantics.
func (ip *Interpreter) evalTry(node *ast.Node, ctx *Context) {
	blockNode, catchParam, catchBlock, finallyBlock := node.Child(0), node.Child(1), node.Child(2), node.Child(3)

	ip.evalBlock(blockNode, ctx)

	if ctx.ExitFlag() == ExitThrow && catchBlock != nil {
		errVal := ctx.ErrorValue()
		ctx.Reset()
		catchCtx := ctx.NewChild(ScopeCatch)
		if catchParam != nil {
			ip.bindPattern(catchCtx, catchParam, errVal)
		}
		ip.evalBlock(catchBlock, catchCtx)
		ctx.UpdateFrom(catchCtx)
	}

	if finallyBlock != nil {
		savedFlag, savedReturn, savedErr := ctx.exitFlag, ctx.returnValue, ctx.errorValue
		ctx.Reset()
		ip.evalBlock(finallyBlock, ctx)
		if ctx.ExitFlag() == ExitNone {
			ctx.exitFlag, ctx.returnValue, ctx.errorValue = savedFlag, savedReturn, savedErr
		}
	}
}
