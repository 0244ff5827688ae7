package ecma

import (
	"github.com/cwbudde/ecmalite/internal/value"
)

// FromHost converts a Go value supplied by the host (via Put, WithGlobal, or
// an EvalWith binding map) into the engine's Value model. Values that are
// already a value.Value pass through unchanged, so a host that already holds
// an internal Value (e.g. one returned from a previous ToHost round trip
// wrapping an *Array or *Object by reference) never gets double-wrapped.
func FromHost(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Undefined
	case value.Value:
		return x
	case bool:
		return value.BoolOf(x)
	case string:
		return value.NewStr(x)
	case int:
		return value.Number(float64(x))
	case int32:
		return value.Number(float64(x))
	case int64:
		return value.Number(float64(x))
	case float32:
		return value.Number(float64(x))
	case float64:
		return value.Number(x)
	case []any:
		elems := make([]value.Value, len(x))
		for i, e := range x {
			elems[i] = FromHost(e)
		}
		return value.NewArray(elems...)
	case map[string]any:
		obj := value.NewObject()
		for k, e := range x {
			obj.Set(k, FromHost(e))
		}
		return obj
	default:
		return value.Undefined
	}
}

// ToHost converts an engine Value to its closest native Go shape: Undefined
// and Null both become nil, everything else converts to a primitive or a
// recursive Go structure. Array and Object convert
// recursively; Function, Regex, Date, and HostMirror are returned as the
// Value itself, since they have no single obvious Go primitive shape and a
// host that needs to call back into them does so through the Value API.
func ToHost(v value.Value) any {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case value.Undef:
		return nil
	case value.Nil:
		return nil
	case value.Bool:
		return bool(x)
	case value.Number:
		return float64(x)
	case value.Str:
		return x.String()
	case *value.Array:
		out := make([]any, len(x.Elements))
		for i, e := range x.Elements {
			out[i] = ToHost(e)
		}
		return out
	case *value.Object:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			fv, _ := x.Get(k)
			out[k] = ToHost(fv)
		}
		return out
	default:
		return v
	}
}
