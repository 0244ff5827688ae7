package builtins

import "github.com/cwbudde/ecmalite/internal/value"

// newObjectCtor builds the Object global: called or newed with an existing
// object it passes through unchanged, with a primitive it returns that
// primitive unchanged (this engine has no boxed primitives), with nothing
// (or null/undefined) it returns a fresh empty Object.
func newObjectCtor() *Native {
	return NewNative("Object", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		v := arg(args, 0)
		if o, ok := v.(*value.Object); ok {
			return o, nil
		}
		if isNullish(v) || v.Kind() == value.KindUndefined {
			return value.NewObject(), nil
		}
		return v, nil
	})
}

// objectStatic resolves Object.keys/values/entries/assign/fromEntries/is.
func objectStatic(name string) (value.Value, bool) {
	switch name {
	case "keys":
		return NewNative("Object.keys", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			keys := objectOwnKeys(arg(args, 0))
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				out[i] = value.NewStr(k)
			}
			return value.NewArray(out...), nil
		}), true
	case "values":
		return NewNative("Object.values", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			o, ok := arg(args, 0).(*value.Object)
			if !ok {
				return value.NewArray(), nil
			}
			keys := o.Keys()
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				out[i], _ = o.Get(k)
			}
			return value.NewArray(out...), nil
		}), true
	case "entries":
		return NewNative("Object.entries", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			o, ok := arg(args, 0).(*value.Object)
			if !ok {
				return value.NewArray(), nil
			}
			keys := o.Keys()
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				v, _ := o.Get(k)
				out[i] = value.NewArray(value.NewStr(k), v)
			}
			return value.NewArray(out...), nil
		}), true
	case "assign":
		return NewNative("Object.assign", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			target, ok := arg(args, 0).(*value.Object)
			if !ok {
				return nil, throwType("Object.assign target must be an object")
			}
			for _, src := range args[1:] {
				if so, ok := src.(*value.Object); ok {
					for _, k := range so.Keys() {
						v, _ := so.Get(k)
						target.Set(k, v)
					}
				}
			}
			return target, nil
		}), true
	case "fromEntries":
		return NewNative("Object.fromEntries", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			out := value.NewObject()
			for _, pair := range value.ForOfValues(arg(args, 0)) {
				entries := value.ForOfValues(pair)
				if len(entries) < 2 {
					continue
				}
				out.Set(value.ToString(entries[0]), entries[1])
			}
			return out, nil
		}), true
	case "is":
		return NewNative("Object.is", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.BoolOf(sameValue(arg(args, 0), arg(args, 1))), nil
		}), true
	}
	return nil, false
}

func objectOwnKeys(v value.Value) []string {
	switch x := v.(type) {
	case *value.Object:
		return x.Keys()
	case *value.Array:
		return value.ForInKeys(x)
	default:
		return nil
	}
}

// sameValue implements Object.is: like StrictEqual except +0/-0 are
// distinguished and NaN equals itself.
func sameValue(a, b value.Value) bool {
	an, aok := a.(value.Number)
	bn, bok := b.(value.Number)
	if aok && bok {
		if float64(an) != float64(an) && float64(bn) != float64(bn) {
			return true // both NaN
		}
		if float64(an) == 0 && float64(bn) == 0 {
			return isNegZero(float64(an)) == isNegZero(float64(bn))
		}
		return float64(an) == float64(bn)
	}
	return value.StrictEqual(a, b)
}

func isNegZero(f float64) bool { return f == 0 && 1/f < 0 }

// objectMethod resolves an Object.prototype method bound to receiver o.
func objectMethod(o *value.Object, name string) (value.Value, bool) {
	switch name {
	case "toString":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(o.String()), nil
		}), true
	case "valueOf":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return o, nil
		}), true
	case "hasOwnProperty":
		return NewNative(name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			_, ok := o.Get(value.ToString(arg(args, 0)))
			return value.BoolOf(ok), nil
		}), true
	}
	return nil, false
}
