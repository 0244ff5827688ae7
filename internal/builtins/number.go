package builtins

import (
	"math"
	"strconv"

	"github.com/cwbudde/ecmalite/internal/value"
)

// newNumberCtor builds the Number global: ToNumber of its argument, or 0
// called with none.
func newNumberCtor() *Native {
	return NewNative("Number", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Narrow(0), nil
		}
		return value.Narrow(value.ToNumber(args[0])), nil
	})
}

func numberStatic(name string) (value.Value, bool) {
	switch name {
	case "isInteger":
		return NewNative("Number.isInteger", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n, ok := arg(args, 0).(value.Number)
			return value.BoolOf(ok && float64(n) == math.Trunc(float64(n)) && !math.IsInf(float64(n), 0)), nil
		}), true
	case "isFinite":
		return NewNative("Number.isFinite", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n, ok := arg(args, 0).(value.Number)
			return value.BoolOf(ok && !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)), nil
		}), true
	case "isNaN":
		return NewNative("Number.isNaN", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n, ok := arg(args, 0).(value.Number)
			return value.BoolOf(ok && math.IsNaN(float64(n))), nil
		}), true
	case "parseFloat":
		return NewNative("Number.parseFloat", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.Narrow(value.ToNumber(arg(args, 0))), nil
		}), true
	case "MAX_SAFE_INTEGER":
		return value.Number(9007199254740991), true
	case "MIN_SAFE_INTEGER":
		return value.Number(-9007199254740991), true
	case "EPSILON":
		return value.Number(2.220446049250313e-16), true
	case "POSITIVE_INFINITY":
		return value.Number(math.Inf(1)), true
	case "NEGATIVE_INFINITY":
		return value.Number(math.Inf(-1)), true
	case "NaN":
		return value.Number(math.NaN()), true
	}
	return nil, false
}

// numberMethod resolves a Number.prototype method bound to receiver n.
func numberMethod(n value.Number, name string) (value.Value, bool) {
	switch name {
	case "toFixed":
		return NewNative(name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			digits := 0
			if len(args) > 0 {
				digits = int(value.ToNumber(args[0]))
			}
			return value.NewStr(strconv.FormatFloat(float64(n), 'f', digits, 64)), nil
		}), true
	case "valueOf":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return n, nil
		}), true
	case "toString":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(n.String()), nil
		}), true
	}
	return nil, false
}
