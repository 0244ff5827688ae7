package builtins

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/ecmalite/internal/value"
)

// newJSON builds the JSON global: a plain Object carrying stringify/parse.
// No reviver/replacer-function support — only the key-filter array
// stringify accepts.
func newJSON() *value.Object {
	j := value.NewObject()
	j.Set("stringify", NewNative("JSON.stringify", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		var filter map[string]bool
		if arr, ok := arg(args, 1).(*value.Array); ok {
			filter = make(map[string]bool, len(arr.Elements))
			for _, k := range arr.Elements {
				filter[value.ToString(k)] = true
			}
		}
		s, err := jsonStringify(arg(args, 0), filter)
		if err != nil {
			return nil, throwType(err.Error())
		}
		if s == "" {
			return value.Undefined, nil
		}
		return value.NewStr(s), nil
	}))
	j.Set("parse", NewNative("JSON.parse", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		text := value.ToString(arg(args, 0))
		if !gjson.Valid(text) {
			return nil, throwSyntax("Unexpected token in JSON")
		}
		return jsonParse(gjson.Parse(text)), nil
	}))
	return j
}

// jsonParse converts a gjson.Result into the engine's Value model without
// an intermediate interface{} tree.
func jsonParse(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null
	case gjson.False:
		return value.False
	case gjson.True:
		return value.True
	case gjson.Number:
		return value.Number(r.Num)
	case gjson.String:
		return value.NewStr(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, jsonParse(v))
				return true
			})
			return value.NewArray(elems...)
		}
		obj := value.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Set(k.Str, jsonParse(v))
			return true
		})
		return obj
	default:
		return value.Undefined
	}
}

// jsonStringify serializes v using sjson's incremental builder, walking the
// Value tree and setting each path rather than building a Go interface{}
// tree and marshaling it in one shot.
func jsonStringify(v value.Value, filter map[string]bool) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case value.Undef:
		return "", nil
	case value.Nil:
		return "null", nil
	case value.Bool:
		return strconv.FormatBool(bool(x)), nil
	case value.Number:
		if float64(x) != float64(x) || isInfFloat(float64(x)) {
			return "null", nil
		}
		return x.String(), nil
	case value.Str:
		return strconv.Quote(x.String()), nil
	case *value.Array:
		doc := "[]"
		var err error
		for i, e := range x.Elements {
			part, perr := jsonStringify(e, filter)
			if perr != nil {
				return "", perr
			}
			if part == "" {
				part = "null"
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(i), part)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *value.Object:
		doc := "{}"
		var err error
		keys := x.Keys()
		if filter != nil {
			kept := keys[:0:0]
			for _, k := range keys {
				if filter[k] {
					kept = append(kept, k)
				}
			}
			keys = kept
		}
		for _, k := range keys {
			fv, _ := x.Get(k)
			part, perr := jsonStringify(fv, filter)
			if perr != nil {
				return "", perr
			}
			if part == "" {
				continue // undefined-valued properties are omitted, not nulled
			}
			// sjson interprets '.' as path nesting; object keys containing a
			// literal dot are a known limitation of this minimal stringify.
			doc, err = sjson.SetRaw(doc, k, part)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case value.Function:
		return "", nil
	default:
		return strconv.Quote(value.ToString(v)), nil
	}
}

func isInfFloat(f float64) bool { return f > 1e308*10 || f < -1e308*10 }
