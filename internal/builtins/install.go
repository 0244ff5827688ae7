package builtins

import (
	"io"
	"math"

	"github.com/cwbudde/ecmalite/internal/interp"
	"github.com/cwbudde/ecmalite/internal/value"
)

// Install populates ip's root context with the fixed global set and wires
// Resolver as the interpreter's builtin-method table. It returns the
// Console so the caller (pkg/ecma) can redirect its sink later without
// reinstalling the globals.
func Install(ip *interp.Interpreter, stdout io.Writer) *Console {
	root := ip.Root()

	root.Put("undefined", value.Undefined)
	root.Put("NaN", value.Number(math.NaN()))
	root.Put("Infinity", value.Number(math.Inf(1)))

	root.Put("Array", newArrayCtor())
	root.Put("Object", newObjectCtor())
	root.Put("String", newStringCtor())
	root.Put("Number", newNumberCtor())
	root.Put("Math", newMath())
	root.Put("Date", newDateCtor())
	root.Put("JSON", newJSON())
	root.Put("RegExp", newRegExpCtor())

	root.Put("Error", errorConstructor("Error"))
	root.Put("TypeError", errorConstructor("TypeError"))
	root.Put("RangeError", errorConstructor("RangeError"))
	root.Put("ReferenceError", errorConstructor("ReferenceError"))
	root.Put("SyntaxError", errorConstructor("SyntaxError"))

	root.Put("parseInt", newParseInt())
	root.Put("parseFloat", newParseFloat())

	console := &Console{Out: stdout}
	root.Put("console", newConsoleObject(console))

	ip.SetMethodResolver(Resolver)
	return console
}
