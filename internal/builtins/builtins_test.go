package builtins

import (
	"bytes"
	"testing"

	"github.com/cwbudde/ecmalite/internal/interp"
	"github.com/cwbudde/ecmalite/internal/parser"
	"github.com/cwbudde/ecmalite/internal/value"
)

// evalInstalled lexes, parses, and evaluates src against a fresh
// interpreter with the full global set installed, returning the program's
// final value stringified via ToString and whatever console.log wrote.
func evalInstalled(t *testing.T, src string) (string, string) {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	root := interp.NewRootContext()
	ip := interp.New(root, "<test>", 256)
	var out bytes.Buffer
	Install(ip, &out)

	result, err := ip.RunProgram(prog)
	if err != nil {
		t.Fatalf("unexpected evaluation error for %q: %v", src, err)
	}
	return value.ToString(result), out.String()
}

func TestArrayMethods(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"map then join", "[1,2,3].map(x => x * 2).join(',')", "2,4,6"},
		{"filter then length", "[1,2,3,4,5].filter(x => x % 2 === 0).length", "2"},
		{"reduce with seed", "[1,2,3,4].reduce((a,b) => a+b, 10)", "20"},
		{"find first match", "[1,2,3].find(x => x > 1)", "2"},
		{"includes true", "[1,2,3].includes(2)", "true"},
		{"indexOf miss", "[1,2,3].indexOf(9)", "-1"},
		{"push mutates and returns new length", "var a = [1]; a.push(2,3); a.length", "3"},
		{"slice negative index", "[1,2,3,4,5].slice(-2).join(',')", "4,5"},
		{"reverse in place", "[1,2,3].reverse().join(',')", "3,2,1"},
		{"sort default lexical", "[10,2,1].sort().join(',')", "1,10,2"},
		{"sort with comparator", "[10,2,1].sort((a,b) => a-b).join(',')", "1,2,10"},
		{"flat one level", "[1,[2,3],[4]].flat().join(',')", "1,2,3,4"},
		{"Array.isArray true", "Array.isArray([1,2])", "true"},
		{"Array.isArray false", "Array.isArray('x')", "false"},
		{"Array.of", "Array.of(1,2,3).join(',')", "1,2,3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalInstalled(t, tt.src)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestStringMethods(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"toUpperCase", "'abc'.toUpperCase()", "ABC"},
		{"trim", "'  hi  '.trim()", "hi"},
		{"padStart", "'5'.padStart(3, '0')", "005"},
		{"split join roundtrip", "'a,b,c'.split(',').join('-')", "a-b-c"},
		{"includes", "'hello world'.includes('world')", "true"},
		{"replace first only", "'aaa'.replace('a', 'b')", "baa"},
		{"replaceAll", "'aaa'.replaceAll('a', 'b')", "bbb"},
		{"charAt", "'hello'.charAt(1)", "e"},
		{"slice negative", "'hello'.slice(-3)", "llo"},
		{"repeat", "'ab'.repeat(3)", "ababab"},
		{"String.fromCharCode", "String.fromCharCode(104, 105)", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalInstalled(t, tt.src)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestMathAndNumberGlobals(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"Math.max", "Math.max(1, 5, 3)", "5"},
		{"Math.min", "Math.min(1, 5, 3)", "1"},
		{"Math.floor", "Math.floor(4.7)", "4"},
		{"Math.abs", "Math.abs(-3)", "3"},
		{"Math.PI rounded", "Math.round(Math.PI * 100) / 100", "3.14"},
		{"Number.isInteger true", "Number.isInteger(4)", "true"},
		{"Number.isInteger false", "Number.isInteger(4.5)", "false"},
		{"toFixed", "(3.14159).toFixed(2)", "3.14"},
		{"parseInt with radix", "parseInt('ff', 16)", "255"},
		{"parseInt stops at non-digit", "parseInt('42px')", "42"},
		{"parseFloat", "parseFloat('3.14abc')", "3.14"},
		{"parseInt non-numeric is NaN", "Number.isNaN(parseInt('abc'))", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalInstalled(t, tt.src)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"stringify object", "JSON.stringify({a: 1, b: 'x'})", `{"a":1,"b":"x"}`},
		{"stringify array", "JSON.stringify([1, 2, 3])", "[1,2,3]"},
		{"parse object field", "JSON.parse('{\"x\": 42}').x", "42"},
		{"parse array element", "JSON.parse('[1,2,3]')[1]", "2"},
		{"round trip object", "JSON.stringify(JSON.parse('{\"n\": 7}'))", `{"n":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalInstalled(t, tt.src)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"Error message", "new Error('oops').message", "oops"},
		{"Error name", "new Error('oops').name", "Error"},
		{"TypeError name", "new TypeError('bad type').name", "TypeError"},
		{"thrown Error caught by message", "try { throw new RangeError('out of range'); } catch (e) { e.message }", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalInstalled(t, tt.src)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestConsoleLogWritesSpaceJoinedArgs(t *testing.T) {
	_, out := evalInstalled(t, `console.log('a', 1, true);`)
	if out != "a 1 true\n" {
		t.Errorf("console.log output = %q, want %q", out, "a 1 true\n")
	}
}

func TestDateGettersReflectUTCEpoch(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"getFullYear", "new Date(0).getFullYear()", "1970"},
		{"getMonth is zero-indexed January", "new Date(0).getMonth()", "0"},
		{"getDate", "new Date(0).getDate()", "1"},
		{"getTime roundtrip", "new Date(12345).getTime()", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalInstalled(t, tt.src)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}
