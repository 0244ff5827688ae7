package parser

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune obsolete snapshots after the package's tests
// finish.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// TestParser_NodeTreeSnapshots pins the generic node tree produced for a
// representative sample of syntax against a go-snaps snapshot (written on
// the first run, compared on later runs), so an
// accidental change to precedence, associativity, or node shape shows up as
// a diff instead of silently changing behavior.
func TestParser_NodeTreeSnapshots(t *testing.T) {
	samples := map[string]string{
		"arithmetic_precedence": "1 + 2 * 3 - 4 / 2;",
		"destructuring":         "const {x, y: z = 9, ...rest} = obj;",
		"arrow_and_call_chain":  "[1, 2, 3].map(x => x * x).reduce((a, b) => a + b, 0);",
		"for_loop":              "for (let i = 0; i < 10; i++) { total += i; }",
		"try_catch_finally":     "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }",
		"optional_chaining":     "a?.b?.[c]?.();",
	}

	for name, src := range samples {
		t.Run(name, func(t *testing.T) {
			prog := parse(t, src)
			snaps.MatchSnapshot(t, prog.Dump())
		})
	}
}
