package interp

import (
	"testing"

	"github.com/cwbudde/ecmalite/internal/parser"
	"github.com/cwbudde/ecmalite/internal/value"
	"github.com/pmezard/go-difflib/difflib"
)

// runSource lexes, parses, and evaluates src against a fresh interpreter
// rooted at a new context, returning the final completion value.
func runSource(t *testing.T, src string) value.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	root := NewRootContext()
	ip := New(root, "<test>", 256)
	result, err := ip.RunProgram(prog)
	if err != nil {
		t.Fatalf("unexpected evaluation error for %q: %v", src, err)
	}
	return result
}

// assertGolden fails with a unified diff when got doesn't match want,
// rather than a single-line mismatch message — useful once a completion
// value's string form grows past a line or two.
func assertGolden(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	}
	text, derr := difflib.GetUnifiedDiffString(diff)
	if derr != nil {
		t.Fatalf("golden mismatch (diff failed: %v)\nwant: %q\ngot:  %q", derr, want, got)
	}
	t.Fatalf("golden mismatch:\n%s", text)
}

func TestEval_ArithmeticAndCoercion(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"'a' + 1", "a1"},
		{"'5' - 2", "3"},
		{"true + true", "2"},
		{"1/0", "Infinity"},
		{"-1/0", "-Infinity"},
		{"0/0", "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := value.ToString(runSource(t, tt.src))
			assertGolden(t, got, tt.want)
		})
	}
}

func TestEval_LoopsAndExitFlags(t *testing.T) {
	got := runSource(t, "var x = 0; for (let i = 1; i <= 5; i++) { if (i === 3) continue; x += i; } x")
	assertGolden(t, value.ToString(got), "12")
}

func TestEval_BreakStopsLoopEarly(t *testing.T) {
	got := runSource(t, "var x = 0; for (let i = 0; i < 10; i++) { if (i === 4) break; x = i; } x")
	assertGolden(t, value.ToString(got), "3")
}

func TestEval_TryCatchFinally(t *testing.T) {
	got := runSource(t, `
		var log = "";
		try {
			log += "t";
			throw "e";
		} catch (err) {
			log += "c";
		} finally {
			log += "f";
		}
		log
	`)
	assertGolden(t, value.ToString(got), "tcf")
}

func TestEval_FunctionClosureCapturesVariable(t *testing.T) {
	got := runSource(t, `
		function makeCounter() {
			let n = 0;
			return function() { n += 1; return n; };
		}
		const counter = makeCounter();
		counter(); counter(); counter()
	`)
	assertGolden(t, value.ToString(got), "3")
}

func TestEval_ContextIsolationBetweenCalls(t *testing.T) {
	root := NewRootContext()
	ip := New(root, "<test>", 256)

	prog1, errs := parser.ParseProgram("var shared = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if _, err := ip.RunProgram(prog1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := root.NewChild(ScopeBlock)
	child.Put("shared", value.Number(99))
	if v, ok := root.Get("shared"); !ok || value.ToString(v) != "1" {
		t.Fatalf("child binding leaked into root: got %v, ok=%v", v, ok)
	}
}

func TestEval_TypeofNeverThrowsForUnboundName(t *testing.T) {
	got := runSource(t, "typeof neverDeclared")
	assertGolden(t, value.ToString(got), "undefined")
}

func TestEval_ObjectRestBindsNamedPropertiesFirst(t *testing.T) {
	got := runSource(t, `
		const {...rest, x} = {x: 1, y: 2};
		rest.y
	`)
	assertGolden(t, value.ToString(got), "2")

	got2 := runSource(t, `
		const {...rest, x} = {x: 1, y: 2};
		'x' in rest
	`)
	assertGolden(t, value.ToString(got2), "false")
}

func TestEval_OptionalChainShortCircuitsRestOfChain(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"dot after optional dot on null", "var a = null; a?.b.c", "undefined"},
		{"bracket after optional dot on null", "var a = null; a?.b['c']", "undefined"},
		{"call after optional dot on null", "var a = null; a?.b.c()", "undefined"},
		{"optional call after optional dot on null", "var a = null; a?.b?.c()", "undefined"},
		{"chain continues normally when not nullish", "var a = {b: {c: 5}}; a?.b.c", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runSource(t, tt.src)
			assertGolden(t, value.ToString(got), tt.want)
		})
	}
}

func TestEval_VarSurvivesNestedBlockAndLoop(t *testing.T) {
	got := runSource(t, `
		function f() {
			if (true) {
				var x = 5;
			}
			return x;
		}
		f()
	`)
	assertGolden(t, value.ToString(got), "5")
}

func TestEval_VarLoopVariableSharesOneBindingAcrossIterations(t *testing.T) {
	got := runSource(t, `
		function f() {
			var fns = [];
			for (var i of [1, 2, 3]) {
				fns.push(function() { return i; });
			}
			return fns.map(fn => fn()).join(',');
		}
		f()
	`)
	assertGolden(t, value.ToString(got), "3,3,3")
}

func TestEval_UncaughtThrowReportsStack(t *testing.T) {
	prog, errs := parser.ParseProgram(`function boom() { throw "bang"; } boom();`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	root := NewRootContext()
	ip := New(root, "<test>", 256)
	_, err := ip.RunProgram(prog)
	if err == nil {
		t.Fatal("expected an uncaught error")
	}
	uncaught, ok := err.(*UncaughtError)
	if !ok {
		t.Fatalf("error is %T, want *UncaughtError", err)
	}
	if uncaught.Stack.Depth() == 0 {
		t.Errorf("expected a non-empty stack trace, got depth 0")
	}
}
