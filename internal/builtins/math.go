package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/ecmalite/internal/value"
)

// newMath builds the Math global: a plain Object carrying its constants and
// unary/binary functions. Math is not callable or newable in ECMAScript,
// matching its representation here as *value.Object rather than a Native.
func newMath() *value.Object {
	m := value.NewObject()
	m.Set("E", value.Number(math.E))
	m.Set("PI", value.Number(math.Pi))
	m.Set("LN2", value.Number(math.Ln2))
	m.Set("LN10", value.Number(math.Log(10)))
	m.Set("LOG2E", value.Number(1/math.Ln2))
	m.Set("SQRT1_2", value.Number(math.Sqrt(0.5)))
	m.Set("SQRT2", value.Number(math.Sqrt2))

	unary := map[string]func(float64) float64{
		"abs": math.Abs, "ceil": math.Ceil, "floor": math.Floor,
		"trunc": math.Trunc, "sqrt": math.Sqrt, "cbrt": math.Cbrt,
		"exp": math.Exp, "expm1": math.Expm1, "log": math.Log,
		"log2": math.Log2, "log10": math.Log10, "log1p": math.Log1p,
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
		"asinh": math.Asinh, "acosh": math.Acosh, "atanh": math.Atanh,
		"fround": func(f float64) float64 { return float64(float32(f)) },
		"sign":   mathSign,
		"round":  mathRound,
	}
	for name, fn := range unary {
		fn := fn
		m.Set(name, NewNative("Math."+name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.Narrow(fn(value.ToNumber(arg(args, 0)))), nil
		}))
	}

	m.Set("pow", NewNative("Math.pow", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		return value.Narrow(math.Pow(value.ToNumber(arg(args, 0)), value.ToNumber(arg(args, 1)))), nil
	}))
	m.Set("atan2", NewNative("Math.atan2", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		return value.Narrow(math.Atan2(value.ToNumber(arg(args, 0)), value.ToNumber(arg(args, 1)))), nil
	}))
	m.Set("imul", NewNative("Math.imul", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		a := value.ToInt32(value.ToNumber(arg(args, 0)))
		b := value.ToInt32(value.ToNumber(arg(args, 1)))
		return value.Narrow(float64(a * b)), nil
	}))
	m.Set("clz32", NewNative("Math.clz32", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		u := value.ToUint32(value.ToNumber(arg(args, 0)))
		n := 0
		for i := 31; i >= 0; i-- {
			if u&(1<<uint(i)) != 0 {
				break
			}
			n++
		}
		return value.Narrow(float64(n)), nil
	}))
	m.Set("hypot", NewNative("Math.hypot", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		sum := 0.0
		for _, a := range args {
			n := value.ToNumber(a)
			sum += n * n
		}
		return value.Narrow(math.Sqrt(sum)), nil
	}))
	m.Set("max", NewNative("Math.max", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		return value.Narrow(mathExtreme(args, math.Inf(-1), func(a, b float64) bool { return a > b })), nil
	}))
	m.Set("min", NewNative("Math.min", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		return value.Narrow(mathExtreme(args, math.Inf(1), func(a, b float64) bool { return a < b })), nil
	}))
	m.Set("random", NewNative("Math.random", func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
		return value.Narrow(rand.Float64()), nil
	}))
	return m
}

func mathSign(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return math.NaN()
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return f
	}
}

// mathRound implements ECMAScript's round-half-up-toward-+Inf rule, distinct
// from Go's math.Round (which rounds half away from zero, so it disagrees
// for negative halves: Math.round(-0.5) is 0 here, not -1).
func mathRound(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Floor(f + 0.5)
}

func mathExtreme(args []value.Value, seed float64, better func(a, b float64) bool) float64 {
	best := seed
	for _, a := range args {
		n := value.ToNumber(a)
		if math.IsNaN(n) {
			return math.NaN()
		}
		if better(n, best) {
			best = n
		}
	}
	return best
}
