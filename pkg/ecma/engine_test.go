package ecma

import (
	"bytes"
	"reflect"
	"testing"
)

// TestSeedScenarios exercises a representative sample of language features
// end to end through the public façade.
func TestSeedScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   any
	}{
		{"for-loop accumulation", "var x = 0; for (let i = 1; i <= 5; i++) { x += i; } x", float64(15)},
		{"mixed-type add", "function add(a, b) { return a + b; } add(2, 3) + add('a', 1)", "5a1"},
		{"array rest destructure", "const [a, , ...rest] = [1, 2, 3, 4]; rest[1]", float64(4)},
		{"object destructure with default and rest", "const {x, y: z = 9, ...rest} = {x: 1, other: 2}; [x, z, rest.other]", []any{float64(1), float64(9), float64(2)}},
		{"typeof unbound name never throws", "typeof undefinedName", "undefined"},
		{"try/catch catches a thrown Error", "try { throw new Error('oops'); } catch (e) { e.message }", "oops"},
		{"map/reduce chain", "[1,2,3].map(x => x*x).reduce((a,b) => a+b, 0)", float64(14)},
		{"string concat with null/undefined", "'a' + null + undefined", "anullundefined"},
		{"infinity and NaN arithmetic", "1/0 === Infinity && -1/0 === -Infinity && 0/0 !== 0/0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New()
			got, err := engine.Eval(tt.source)
			if err != nil {
				t.Fatalf("Eval(%q) returned error: %v", tt.source, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Eval(%q) = %#v, want %#v", tt.source, got, tt.want)
			}
		})
	}
}

func TestEvalWithBindings(t *testing.T) {
	engine := New()
	got, err := engine.EvalWith("a + b", map[string]any{"a": float64(3), "b": float64(4)})
	if err != nil {
		t.Fatalf("EvalWith returned error: %v", err)
	}
	if got != float64(7) {
		t.Errorf("EvalWith(a + b) = %v, want 7", got)
	}

	// Bindings from one EvalWith call never leak into the engine's globals.
	if _, ok := engine.Get("a"); ok {
		t.Errorf("EvalWith binding leaked into engine globals")
	}
}

func TestGetPutRemove(t *testing.T) {
	engine := New()
	engine.Put("counter", float64(41))
	got, err := engine.Eval("counter + 1")
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got != float64(42) {
		t.Errorf("Eval(counter + 1) = %v, want 42", got)
	}

	v, ok := engine.Get("counter")
	if !ok || v != float64(41) {
		t.Errorf("Get(counter) = %v, %v; want 41, true", v, ok)
	}

	if !engine.Remove("counter") {
		t.Errorf("Remove(counter) = false, want true")
	}
	if _, err := engine.Eval("counter"); err == nil {
		t.Errorf("Eval(counter) after Remove should error, got nil")
	}
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	engine := New(WithConsoleSink(&buf))
	if _, err := engine.Eval("console.log('hello', 'world')"); err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got := buf.String(); got != "hello world\n" {
		t.Errorf("console.log output = %q, want %q", got, "hello world\n")
	}
}

func TestUncaughtErrorHasStackTrace(t *testing.T) {
	engine := New()
	_, err := engine.Eval("function boom() { throw new Error('bang'); } boom();")
	if err == nil {
		t.Fatal("expected an error for an uncaught throw")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("error is %T, want *RuntimeError", err)
	}
	if re.Stack.Depth() == 0 {
		t.Errorf("expected a non-empty call stack for an uncaught throw from inside a function")
	}
}

func TestParseErrorReported(t *testing.T) {
	engine := New()
	_, err := engine.Eval("var x = ;")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("error is %T, want *ParseError", err)
	}
}
