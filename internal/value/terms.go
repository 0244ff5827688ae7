// This file implements ECMAScript-compatible coercion and operator rules:
// conversions, equality, truthiness, arithmetic, and bitwise operators,
// implemented as pure functions over Value so the interpreter never needs a
// type switch to decide what an operator means.
package value

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber implements the abstract ToNumber conversion.
func ToNumber(v Value) float64 {
	switch x := v.(type) {
	case Undef:
		return math.NaN()
	case Nil:
		return 0
	case Bool:
		if x {
			return 1
		}
		return 0
	case Number:
		return float64(x)
	case Str:
		return stringToNumber(x.String())
	case *Date:
		return x.Millis
	default:
		return math.NaN()
	}
}

func stringToNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		n, err := strconv.ParseUint(trimmed[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToString implements the abstract ToString conversion. Every Value
// implementation's own String() method already encodes the right behavior
// for its kind (arrays join with commas, Undefined renders "undefined",
// plain objects render "[object Object]"), so ToString simply dispatches to
// it — kept as a named function for symmetry with ToNumber.
func ToString(v Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}

// Truthy implements the abstract ToBoolean conversion: false for
// Null, Undefined, NaN, 0, empty string, and false itself; true otherwise,
// including every object and array, even an empty one.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Undef, Nil:
		return false
	case Bool:
		return bool(x)
	case Number:
		return float64(x) != 0 && !math.IsNaN(float64(x))
	case Str:
		return x.Len() > 0
	case nil:
		return false
	default:
		return true
	}
}

// TypeOf implements the typeof operator.
func TypeOf(v Value) string {
	if v == nil {
		return "undefined"
	}
	return v.Kind().TypeOf()
}

// Narrow chooses a presentation for an exact-integer double. Go's float64
// already formats an exact integer without a decimal point via formatNumber,
// so no separate i32/i64 representation is needed to keep narrowing safe.
func Narrow(d float64) Value {
	return Number(d)
}

// LooseEqual implements the abstract equality algorithm ("==").
func LooseEqual(a, b Value) bool {
	ak, bk := a.Kind(), b.Kind()

	if ak == bk {
		return strictEqualSameKind(a, b)
	}
	if (ak == KindNull && bk == KindUndefined) || (ak == KindUndefined && bk == KindNull) {
		return true
	}
	if ak == KindNumber && bk == KindString {
		return ToNumber(a) == stringToNumber(b.(Str).String()) && !math.IsNaN(ToNumber(a))
	}
	if ak == KindString && bk == KindNumber {
		return LooseEqual(b, a)
	}
	if ak == KindBoolean {
		return LooseEqual(Number(ToNumber(a)), b)
	}
	if bk == KindBoolean {
		return LooseEqual(a, Number(ToNumber(b)))
	}
	return false
}

// StrictEqual implements the abstract strict-equality algorithm ("===").
func StrictEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return strictEqualSameKind(a, b)
}

func strictEqualSameKind(a, b Value) bool {
	switch x := a.(type) {
	case Undef:
		return true
	case Nil:
		return true
	case Bool:
		return bool(x) == bool(b.(Bool))
	case Number:
		bn := float64(b.(Number))
		if math.IsNaN(float64(x)) || math.IsNaN(bn) {
			return false
		}
		return float64(x) == bn
	case Str:
		return x.String() == b.(Str).String()
	default:
		// Arrays, objects, functions, regexes, dates, and host mirrors compare
		// by reference identity.
		return a == b
	}
}

// Add implements "+": numeric addition when both operands are numbers,
// string concatenation otherwise (ECMAScript's ToPrimitive-then-Add, with no
// object-to-primitive hook in this value model beyond String()).
func Add(a, b Value) Value {
	if a.Kind() == KindNumber && b.Kind() == KindNumber {
		return Narrow(float64(a.(Number)) + float64(b.(Number)))
	}
	return NewStr(ToString(a) + ToString(b))
}

func Sub(a, b Value) Value { return Narrow(ToNumber(a) - ToNumber(b)) }
func Mul(a, b Value) Value { return Narrow(ToNumber(a) * ToNumber(b)) }
func Div(a, b Value) Value { return Narrow(ToNumber(a) / ToNumber(b)) }
func Mod(a, b Value) Value { return Narrow(math.Mod(ToNumber(a), ToNumber(b))) }
func Pow(a, b Value) Value { return Narrow(math.Pow(ToNumber(a), ToNumber(b))) }

// ToInt32 implements the abstract ToInt32 conversion used by the bitwise
// operators.
func ToInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	u := uint32(int64(math.Trunc(f)))
	return int32(u)
}

// ToUint32 implements the abstract ToUint32 conversion.
func ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(f)))
}

func BitAnd(a, b Value) Value { return Narrow(float64(ToInt32(ToNumber(a)) & ToInt32(ToNumber(b)))) }
func BitOr(a, b Value) Value  { return Narrow(float64(ToInt32(ToNumber(a)) | ToInt32(ToNumber(b)))) }
func BitXor(a, b Value) Value { return Narrow(float64(ToInt32(ToNumber(a)) ^ ToInt32(ToNumber(b)))) }
func BitNot(a Value) Value    { return Narrow(float64(^ToInt32(ToNumber(a)))) }

func Shl(a, b Value) Value {
	return Narrow(float64(ToInt32(ToNumber(a)) << (ToUint32(ToNumber(b)) & 31)))
}
func Shr(a, b Value) Value {
	return Narrow(float64(ToInt32(ToNumber(a)) >> (ToUint32(ToNumber(b)) & 31)))
}
func Ushr(a, b Value) Value {
	return Narrow(float64(ToUint32(ToNumber(a)) >> (ToUint32(ToNumber(b)) & 31)))
}

// Compare implements the abstract relational comparison used by <, <=, >,
// >=: numeric when either side is a number, lexicographic string compare
// (by UTF-16 code unit) otherwise. It returns -1, 0, 1, or NaN-ness via ok
// == false (any comparison against NaN is false, per ECMAScript).
func Compare(a, b Value) (result int, ok bool) {
	if a.Kind() == KindNumber || b.Kind() == KindNumber {
		an, bn := ToNumber(a), ToNumber(b)
		if math.IsNaN(an) || math.IsNaN(bn) {
			return 0, false
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}
	as, bs := NewStr(ToString(a)), NewStr(ToString(b))
	for i := 0; i < as.Len() && i < bs.Len(); i++ {
		if au, bu := as.Unit(i), bs.Unit(i); au != bu {
			if au < bu {
				return -1, true
			}
			return 1, true
		}
	}
	switch {
	case as.Len() < bs.Len():
		return -1, true
	case as.Len() > bs.Len():
		return 1, true
	default:
		return 0, true
	}
}

// ForInKeys returns the keys a for…in loop should iterate: an Array's
// indices as strings, or an Object's own keys in insertion order.
func ForInKeys(v Value) []string {
	switch x := v.(type) {
	case *Array:
		keys := make([]string, len(x.Elements))
		for i := range x.Elements {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	case *Object:
		return x.Keys()
	default:
		return nil
	}
}

// ForOfValues returns the values a for…of loop should iterate: an Array's
// elements, an Object's values in insertion order, or a Str's characters.
func ForOfValues(v Value) []Value {
	switch x := v.(type) {
	case *Array:
		return x.Elements
	case *Object:
		keys := x.Keys()
		out := make([]Value, len(keys))
		for i, k := range keys {
			out[i], _ = x.Get(k)
		}
		return out
	case Str:
		units := make([]Value, 0, x.Len())
		for _, r := range x.String() {
			units = append(units, NewStr(string(r)))
		}
		return units
	default:
		return nil
	}
}
