package parser

import (
	"strings"
	"testing"

	"github.com/cwbudde/ecmalite/internal/ast"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	prog, errs := ParseProgram(src)
	if len(errs) != 0 {
		var sb strings.Builder
		for _, e := range errs {
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
		t.Fatalf("unexpected parse errors for %q:\n%s", src, sb.String())
	}
	return prog
}

func TestParser_VarDecl(t *testing.T) {
	prog := parse(t, "let x = 1 + 2;")
	if len(prog.Children) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Children))
	}
	decl := prog.Child(0)
	if decl.Kind != ast.VarDecl {
		t.Fatalf("expected VarDecl, got %s", decl.Kind)
	}
	if decl.Tok.Literal != "let" {
		t.Fatalf("expected 'let', got %q", decl.Tok.Literal)
	}
	declarator := decl.Child(0)
	init := declarator.Child(1)
	if init.Kind != ast.Binary || init.Tok.Literal != "+" {
		t.Fatalf("expected Binary '+', got %s %q", init.Kind, init.Tok.Literal)
	}
}

func TestParser_ASI(t *testing.T) {
	prog := parse(t, "let a = 1\nlet b = 2\n")
	if len(prog.Children) != 2 {
		t.Fatalf("expected 2 statements via ASI, got %d", len(prog.Children))
	}
}

func TestParser_IfElse(t *testing.T) {
	prog := parse(t, "if (a) { b(); } else { c(); }")
	ifNode := prog.Child(0)
	if ifNode.Kind != ast.If {
		t.Fatalf("expected If, got %s", ifNode.Kind)
	}
	if ifNode.Child(1).Kind != ast.Block || ifNode.Child(2).Kind != ast.Block {
		t.Fatalf("expected both branches to be blocks")
	}
}

func TestParser_LBraceIsAlwaysBlock(t *testing.T) {
	// Statement position never parses '{' as an object literal: "{ a }" would
	// be a shorthand object literal in expression position.
	prog := parse(t, "{ a }")
	if prog.Child(0).Kind != ast.Block {
		t.Fatalf("expected Block at statement position, got %s", prog.Child(0).Kind)
	}
}

func TestParser_ForClassic(t *testing.T) {
	prog := parse(t, "for (let i = 0; i < 10; i = i + 1) { sum = sum + i; }")
	forNode := prog.Child(0)
	if forNode.Kind != ast.For {
		t.Fatalf("expected For, got %s", forNode.Kind)
	}
	if forNode.Child(0).Kind != ast.VarDecl {
		t.Fatalf("expected init to be VarDecl, got %s", forNode.Child(0).Kind)
	}
	if forNode.Child(1).Kind != ast.Binary {
		t.Fatalf("expected test to be Binary, got %s", forNode.Child(1).Kind)
	}
}

func TestParser_ForIn(t *testing.T) {
	prog := parse(t, "for (let k in obj) { use(k); }")
	forNode := prog.Child(0)
	if forNode.Kind != ast.ForIn {
		t.Fatalf("expected ForIn, got %s", forNode.Kind)
	}
}

func TestParser_ForOf(t *testing.T) {
	prog := parse(t, "for (const v of items) { use(v); }")
	forNode := prog.Child(0)
	if forNode.Kind != ast.ForOf {
		t.Fatalf("expected ForOf, got %s", forNode.Kind)
	}
}

func TestParser_ForWithoutDeclNoIn(t *testing.T) {
	// "x in obj" must not be consumed by the init clause's relational parse.
	prog := parse(t, "for (x in obj) { use(x); }")
	forNode := prog.Child(0)
	if forNode.Kind != ast.ForIn {
		t.Fatalf("expected ForIn, got %s", forNode.Kind)
	}
	if forNode.Child(0).Kind != ast.Ident {
		t.Fatalf("expected left to be bare Ident, got %s", forNode.Child(0).Kind)
	}
}

func TestParser_TryCatchFinally(t *testing.T) {
	prog := parse(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	tryNode := prog.Child(0)
	if tryNode.Kind != ast.Try {
		t.Fatalf("expected Try, got %s", tryNode.Kind)
	}
	if tryNode.Child(1).Kind != ast.Ident {
		t.Fatalf("expected catch param Ident, got %s", tryNode.Child(1).Kind)
	}
	if tryNode.Child(3).Kind != ast.Block {
		t.Fatalf("expected finally block")
	}
}

func TestParser_FunctionDeclAndCall(t *testing.T) {
	prog := parse(t, "function add(a, b) { return a + b; } add(1, 2);")
	fn := prog.Child(0)
	if fn.Kind != ast.FunctionDecl {
		t.Fatalf("expected FunctionDecl, got %s", fn.Kind)
	}
	callStmt := prog.Child(1)
	call := callStmt.Child(0)
	if call.Kind != ast.CallExpr {
		t.Fatalf("expected CallExpr, got %s", call.Kind)
	}
	if len(call.Children) != 3 { // callee + 2 args
		t.Fatalf("expected 3 children (callee, 2 args), got %d", len(call.Children))
	}
}

func TestParser_ArrowFunctionSingleParam(t *testing.T) {
	prog := parse(t, "let f = x => x + 1;")
	decl := prog.Child(0)
	init := decl.Child(0).Child(1)
	if init.Kind != ast.ArrowFunction {
		t.Fatalf("expected ArrowFunction, got %s", init.Kind)
	}
	if !init.Flag {
		t.Fatalf("expected expression-bodied arrow (Flag=true)")
	}
}

func TestParser_ArrowFunctionParenParams(t *testing.T) {
	prog := parse(t, "let f = (a, b) => { return a + b; };")
	decl := prog.Child(0)
	init := decl.Child(0).Child(1)
	if init.Kind != ast.ArrowFunction {
		t.Fatalf("expected ArrowFunction, got %s", init.Kind)
	}
	if init.Flag {
		t.Fatalf("expected block-bodied arrow (Flag=false)")
	}
	// 2 params + body block = 3 children
	if len(init.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(init.Children))
	}
}

func TestParser_ParenExprIsNotArrow(t *testing.T) {
	prog := parse(t, "let x = (a + b);")
	decl := prog.Child(0)
	init := decl.Child(0).Child(1)
	if init.Kind != ast.Binary {
		t.Fatalf("expected Binary (parenthesized expr), got %s", init.Kind)
	}
}

func TestParser_ArrayDestructuring(t *testing.T) {
	prog := parse(t, "let [a, , ...rest] = xs;")
	decl := prog.Child(0)
	target := decl.Child(0).Child(0)
	if target.Kind != ast.ArrayLit {
		t.Fatalf("expected ArrayLit pattern, got %s", target.Kind)
	}
	if len(target.Children) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(target.Children))
	}
	if target.Child(1) != nil {
		t.Fatalf("expected hole at index 1")
	}
	if target.Child(2).Kind != ast.Spread {
		t.Fatalf("expected Spread rest element, got %s", target.Child(2).Kind)
	}
}

func TestParser_ObjectDestructuring(t *testing.T) {
	prog := parse(t, "let { a, b: renamed, c = 3 } = obj;")
	decl := prog.Child(0)
	target := decl.Child(0).Child(0)
	if target.Kind != ast.ObjectLit {
		t.Fatalf("expected ObjectLit pattern, got %s", target.Kind)
	}
	if len(target.Children) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(target.Children))
	}
	third := target.Child(2)
	if third.Child(1).Kind != ast.Assignment {
		t.Fatalf("expected default-valued property, got %s", third.Child(1).Kind)
	}
}

func TestParser_ExponentRightAssoc(t *testing.T) {
	prog := parse(t, "let x = 2 ** 3 ** 2;")
	decl := prog.Child(0)
	init := decl.Child(0).Child(1)
	if init.Kind != ast.Binary || init.Tok.Literal != "**" {
		t.Fatalf("expected Binary '**', got %s", init.Kind)
	}
	right := init.Child(1)
	if right.Kind != ast.Binary || right.Tok.Literal != "**" {
		t.Fatalf("expected right-nested '**', got %s", right.Kind)
	}
}

func TestParser_MemberAndCallChain(t *testing.T) {
	prog := parse(t, "a.b[c].d(1, 2);")
	exprStmt := prog.Child(0)
	call := exprStmt.Child(0)
	if call.Kind != ast.CallExpr {
		t.Fatalf("expected CallExpr, got %s", call.Kind)
	}
	memberD := call.Child(0)
	if memberD.Kind != ast.MemberDot || memberD.Tok.Literal != "d" {
		t.Fatalf("expected MemberDot 'd', got %s %q", memberD.Kind, memberD.Tok.Literal)
	}
}

func TestParser_OptionalChaining(t *testing.T) {
	prog := parse(t, "a?.b?.();")
	call := prog.Child(0).Child(0)
	if call.Kind != ast.CallExpr || !call.Flag {
		t.Fatalf("expected optional CallExpr")
	}
}

func TestParser_NewExpression(t *testing.T) {
	prog := parse(t, "new Foo.Bar(1);")
	newNode := prog.Child(0).Child(0)
	if newNode.Kind != ast.NewExpr {
		t.Fatalf("expected NewExpr, got %s", newNode.Kind)
	}
}

func TestParser_TernaryAndNullish(t *testing.T) {
	prog := parse(t, "let x = a ?? b ? c : d;")
	decl := prog.Child(0)
	init := decl.Child(0).Child(1)
	if init.Kind != ast.Conditional {
		t.Fatalf("expected Conditional, got %s", init.Kind)
	}
	if init.Child(0).Kind != ast.Logical || init.Child(0).Tok.Literal != "??" {
		t.Fatalf("expected Logical '??' as test, got %s", init.Child(0).Kind)
	}
}

func TestParser_TemplateLiteral(t *testing.T) {
	prog := parse(t, "let s = `hi ${name}!`;")
	decl := prog.Child(0)
	tmpl := decl.Child(0).Child(1)
	if tmpl.Kind != ast.TemplateLit {
		t.Fatalf("expected TemplateLit, got %s", tmpl.Kind)
	}
	if len(tmpl.Children) != 3 {
		t.Fatalf("expected 3 segments (span, expr, span), got %d", len(tmpl.Children))
	}
	if tmpl.Child(1).Kind != ast.Ident {
		t.Fatalf("expected interpolated Ident, got %s", tmpl.Child(1).Kind)
	}
}

func TestParser_SwitchStatement(t *testing.T) {
	prog := parse(t, "switch (x) { case 1: a(); break; default: b(); }")
	sw := prog.Child(0)
	if sw.Kind != ast.Switch {
		t.Fatalf("expected Switch, got %s", sw.Kind)
	}
	if len(sw.Children) != 3 { // discriminant + 2 case clauses
		t.Fatalf("expected 3 children, got %d", len(sw.Children))
	}
}

func TestParser_Idempotence(t *testing.T) {
	// Re-parsing a dumped tree's originating source should produce a
	// structurally identical tree (modulo position info).
	src := "function f(a, b) { if (a > b) { return a; } else { return b; } }"
	prog1 := parse(t, src)
	prog2 := parse(t, src)
	if prog1.Dump() != prog2.Dump() {
		t.Fatalf("parser is not idempotent on identical input:\n%s\n---\n%s", prog1.Dump(), prog2.Dump())
	}
}

func TestParser_SequenceExpression(t *testing.T) {
	prog := parse(t, "a = (1, 2, 3);")
	assign := prog.Child(0).Child(0)
	seq := assign.Child(1)
	if seq.Kind != ast.SequenceExpr {
		t.Fatalf("expected SequenceExpr, got %s", seq.Kind)
	}
	if len(seq.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(seq.Children))
	}
}
