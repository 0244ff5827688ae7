package builtins

import (
	"sort"
	"strings"

	"github.com/cwbudde/ecmalite/internal/value"
)

// newArrayCtor builds the Array global: callable/newable to build an array
// (Array(n) preallocates n holes, Array(a, b, ...) collects its arguments),
// carrying the isArray/of/from statics.
func newArrayCtor() *Native {
	ctor := NewNative("Array", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 1 && args[0].Kind() == value.KindNumber {
			n := int(value.ToNumber(args[0]))
			if n < 0 {
				return nil, throwRange("Invalid array length")
			}
			elems := make([]value.Value, n)
			for i := range elems {
				elems[i] = value.Null
			}
			return &value.Array{Elements: elems}, nil
		}
		return value.NewArray(append([]value.Value{}, args...)...), nil
	})
	return ctor
}

// arrayStatic resolves Array.isArray/of/from.
func arrayStatic(name string) (value.Value, bool) {
	switch name {
	case "isArray":
		return NewNative("Array.isArray", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			_, ok := arg(args, 0).(*value.Array)
			return value.BoolOf(ok), nil
		}), true
	case "of":
		return NewNative("Array.of", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.NewArray(append([]value.Value{}, args...)...), nil
		}), true
	case "from":
		return NewNative("Array.from", func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			src := value.ForOfValues(arg(args, 0))
			if src == nil {
				if s, ok := arg(args, 0).(*value.Object); ok {
					if lv, ok := s.Get("length"); ok {
						n := int(value.ToNumber(lv))
						src = make([]value.Value, n)
						for i := 0; i < n; i++ {
							src[i] = value.Undefined
						}
					}
				}
			}
			fn, hasFn := arg(args, 1).(value.Function)
			out := make([]value.Value, len(src))
			for i, v := range src {
				if hasFn {
					mapped, err := fn.Call(call, value.Undefined, []value.Value{v, value.Narrow(float64(i))})
					if err != nil {
						return nil, err
					}
					v = mapped
				}
				out[i] = v
			}
			return value.NewArray(out...), nil
		}), true
	}
	return nil, false
}

// arrayMethod resolves an Array.prototype method bound to receiver a.
func arrayMethod(a *value.Array, name string) (value.Value, bool) {
	bound := func(fn NativeFunc) (value.Value, bool) { return NewNative(name, fn), true }

	switch name {
	case "push":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			a.Elements = append(a.Elements, args...)
			return value.Narrow(float64(len(a.Elements))), nil
		})
	case "pop":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			if len(a.Elements) == 0 {
				return value.Undefined, nil
			}
			last := a.Elements[len(a.Elements)-1]
			a.Elements = a.Elements[:len(a.Elements)-1]
			return last, nil
		})
	case "shift":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			if len(a.Elements) == 0 {
				return value.Undefined, nil
			}
			first := a.Elements[0]
			a.Elements = a.Elements[1:]
			return first, nil
		})
	case "unshift":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			a.Elements = append(append([]value.Value{}, args...), a.Elements...)
			return value.Narrow(float64(len(a.Elements))), nil
		})
	case "slice":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			start, end := sliceBounds(len(a.Elements), args)
			out := append([]value.Value{}, a.Elements[start:end]...)
			return value.NewArray(out...), nil
		})
	case "splice":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n := len(a.Elements)
			start := clampIndex(n, arg(args, 0))
			deleteCount := n - start
			if len(args) > 1 {
				dc := int(value.ToNumber(args[1]))
				if dc < 0 {
					dc = 0
				}
				if dc < deleteCount {
					deleteCount = dc
				}
			}
			removed := append([]value.Value{}, a.Elements[start:start+deleteCount]...)
			var inserted []value.Value
			if len(args) > 2 {
				inserted = args[2:]
			}
			tail := append([]value.Value{}, a.Elements[start+deleteCount:]...)
			a.Elements = append(append(a.Elements[:start:start], inserted...), tail...)
			return value.NewArray(removed...), nil
		})
	case "concat":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			out := append([]value.Value{}, a.Elements...)
			for _, v := range args {
				if other, ok := v.(*value.Array); ok {
					out = append(out, other.Elements...)
				} else {
					out = append(out, v)
				}
			}
			return value.NewArray(out...), nil
		})
	case "indexOf":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			target := arg(args, 0)
			start := 0
			if len(args) > 1 {
				start = clampIndex(len(a.Elements), args[1])
			}
			for i := start; i < len(a.Elements); i++ {
				if value.StrictEqual(a.Elements[i], target) {
					return value.Narrow(float64(i)), nil
				}
			}
			return value.Narrow(-1), nil
		})
	case "lastIndexOf":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			target := arg(args, 0)
			for i := len(a.Elements) - 1; i >= 0; i-- {
				if value.StrictEqual(a.Elements[i], target) {
					return value.Narrow(float64(i)), nil
				}
			}
			return value.Narrow(-1), nil
		})
	case "includes":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			target := arg(args, 0)
			for _, e := range a.Elements {
				if value.StrictEqual(e, target) || (isNaNValue(e) && isNaNValue(target)) {
					return value.True, nil
				}
			}
			return value.False, nil
		})
	case "join":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			sep := ","
			if len(args) > 0 && args[0].Kind() != value.KindUndefined {
				sep = value.ToString(args[0])
			}
			parts := make([]string, len(a.Elements))
			for i, e := range a.Elements {
				if isNullish(e) {
					parts[i] = ""
				} else {
					parts[i] = value.ToString(e)
				}
			}
			return value.NewStr(strings.Join(parts, sep)), nil
		})
	case "reverse":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			for i, j := 0, len(a.Elements)-1; i < j; i, j = i+1, j-1 {
				a.Elements[i], a.Elements[j] = a.Elements[j], a.Elements[i]
			}
			return a, nil
		})
	case "sort":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			cmp, _ := arg(args, 0).(value.Function)
			var sortErr error
			sort.SliceStable(a.Elements, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				if cmp != nil {
					r, err := cmp.Call(call, value.Undefined, []value.Value{a.Elements[i], a.Elements[j]})
					if err != nil {
						sortErr = err
						return false
					}
					return value.ToNumber(r) < 0
				}
				return value.ToString(a.Elements[i]) < value.ToString(a.Elements[j])
			})
			return a, sortErr
		})
	case "map":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			out := make([]value.Value, len(a.Elements))
			for i, e := range a.Elements {
				r, err := fn.Call(call, value.Undefined, []value.Value{e, value.Narrow(float64(i)), a})
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return value.NewArray(out...), nil
		})
	case "filter":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			var out []value.Value
			for i, e := range a.Elements {
				r, err := fn.Call(call, value.Undefined, []value.Value{e, value.Narrow(float64(i)), a})
				if err != nil {
					return nil, err
				}
				if value.Truthy(r) {
					out = append(out, e)
				}
			}
			return value.NewArray(out...), nil
		})
	case "find", "findIndex", "findLast", "findLastIndex":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			indices := make([]int, len(a.Elements))
			for i := range indices {
				indices[i] = i
			}
			if name == "findLast" || name == "findLastIndex" {
				for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
					indices[i], indices[j] = indices[j], indices[i]
				}
			}
			for _, i := range indices {
				r, err := fn.Call(call, value.Undefined, []value.Value{a.Elements[i], value.Narrow(float64(i)), a})
				if err != nil {
					return nil, err
				}
				if value.Truthy(r) {
					if name == "find" || name == "findLast" {
						return a.Elements[i], nil
					}
					return value.Narrow(float64(i)), nil
				}
			}
			if name == "find" || name == "findLast" {
				return value.Undefined, nil
			}
			return value.Narrow(-1), nil
		})
	case "forEach":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			for i, e := range a.Elements {
				if _, err := fn.Call(call, value.Undefined, []value.Value{e, value.Narrow(float64(i)), a}); err != nil {
					return nil, err
				}
			}
			return value.Undefined, nil
		})
	case "some", "every":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			for i, e := range a.Elements {
				r, err := fn.Call(call, value.Undefined, []value.Value{e, value.Narrow(float64(i)), a})
				if err != nil {
					return nil, err
				}
				truthy := value.Truthy(r)
				if name == "some" && truthy {
					return value.True, nil
				}
				if name == "every" && !truthy {
					return value.False, nil
				}
			}
			return value.BoolOf(name == "every"), nil
		})
	case "reduce", "reduceRight":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			indices := make([]int, len(a.Elements))
			for i := range indices {
				indices[i] = i
			}
			if name == "reduceRight" {
				for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
					indices[i], indices[j] = indices[j], indices[i]
				}
			}
			var acc value.Value
			rest := indices
			if len(args) > 1 {
				acc = args[1]
			} else {
				if len(indices) == 0 {
					return nil, throwType("Reduce of empty array with no initial value")
				}
				acc = a.Elements[indices[0]]
				rest = indices[1:]
			}
			for _, i := range rest {
				r, err := fn.Call(call, value.Undefined, []value.Value{acc, a.Elements[i], value.Narrow(float64(i)), a})
				if err != nil {
					return nil, err
				}
				acc = r
			}
			return acc, nil
		})
	case "flat":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			depth := 1
			if len(args) > 0 {
				depth = int(value.ToNumber(args[0]))
			}
			return value.NewArray(flatten(a.Elements, depth)...), nil
		})
	case "flatMap":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			fn, ok := arg(args, 0).(value.Function)
			if !ok {
				return nil, throwType(name + " callback is not a function")
			}
			var out []value.Value
			for i, e := range a.Elements {
				r, err := fn.Call(call, value.Undefined, []value.Value{e, value.Narrow(float64(i)), a})
				if err != nil {
					return nil, err
				}
				if arr, ok := r.(*value.Array); ok {
					out = append(out, arr.Elements...)
				} else {
					out = append(out, r)
				}
			}
			return value.NewArray(out...), nil
		})
	case "fill":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			v := arg(args, 0)
			var rest []value.Value
			if len(args) > 1 {
				rest = args[1:]
			}
			start, end := sliceBounds(len(a.Elements), rest)
			for i := start; i < end; i++ {
				a.Elements[i] = v
			}
			return a, nil
		})
	case "at":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			i := int(value.ToNumber(arg(args, 0)))
			if i < 0 {
				i += len(a.Elements)
			}
			if i < 0 || i >= len(a.Elements) {
				return value.Undefined, nil
			}
			return a.Elements[i], nil
		})
	case "with":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			i := int(value.ToNumber(arg(args, 0)))
			if i < 0 {
				i += len(a.Elements)
			}
			if i < 0 || i >= len(a.Elements) {
				return nil, throwRange("Invalid index")
			}
			out := append([]value.Value{}, a.Elements...)
			out[i] = arg(args, 1)
			return value.NewArray(out...), nil
		})
	case "copyWithin":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n := len(a.Elements)
			target := clampIndex(n, arg(args, 0))
			start := 0
			if len(args) > 1 {
				start = clampIndex(n, args[1])
			}
			end := n
			if len(args) > 2 {
				end = clampIndex(n, args[2])
			}
			chunk := append([]value.Value{}, a.Elements[start:end]...)
			for i, v := range chunk {
				if target+i >= n {
					break
				}
				a.Elements[target+i] = v
			}
			return a, nil
		})
	case "keys":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			out := make([]value.Value, len(a.Elements))
			for i := range a.Elements {
				out[i] = value.Narrow(float64(i))
			}
			return value.NewArray(out...), nil
		})
	case "values":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewArray(append([]value.Value{}, a.Elements...)...), nil
		})
	case "entries":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			out := make([]value.Value, len(a.Elements))
			for i, e := range a.Elements {
				out[i] = value.NewArray(value.Narrow(float64(i)), e)
			}
			return value.NewArray(out...), nil
		})
	case "toString":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(a.String()), nil
		})
	}
	return nil, false
}

func isNaNValue(v value.Value) bool {
	n, ok := v.(value.Number)
	return ok && float64(n) != float64(n)
}

func flatten(elems []value.Value, depth int) []value.Value {
	var out []value.Value
	for _, e := range elems {
		if arr, ok := e.(*value.Array); ok && depth > 0 {
			out = append(out, flatten(arr.Elements, depth-1)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

// clampIndex resolves a (possibly negative, possibly out-of-range) relative
// index argument the way slice/splice/indexOf's start arguments do.
func clampIndex(length int, v value.Value) int {
	n := int(value.ToNumber(v))
	if n < 0 {
		n += length
	}
	if n < 0 {
		n = 0
	}
	if n > length {
		n = length
	}
	return n
}

// sliceBounds resolves the (start, end) pair Array.prototype.slice/fill
// take as their first two arguments.
func sliceBounds(length int, args []value.Value) (int, int) {
	start := 0
	if len(args) > 0 && args[0].Kind() != value.KindUndefined {
		start = clampIndex(length, args[0])
	}
	end := length
	if len(args) > 1 && args[1].Kind() != value.KindUndefined {
		end = clampIndex(length, args[1])
	}
	if end < start {
		end = start
	}
	return start, end
}

