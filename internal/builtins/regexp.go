package builtins

import "github.com/cwbudde/ecmalite/internal/value"

// newRegExpCtor builds the RegExp global: constructs from a pattern string
// (or an existing Regex, whose source/flags are reused) and an optional
// flag string.
func newRegExpCtor() *Native {
	return NewNative("RegExp", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		source, flags := "", ""
		switch p := arg(args, 0).(type) {
		case *value.Regex:
			source, flags = p.Source, p.Flags
		default:
			source = value.ToString(arg(args, 0))
		}
		if len(args) > 1 && args[1].Kind() != value.KindUndefined {
			flags = value.ToString(args[1])
		}
		re, err := value.NewRegex(source, flags)
		if err != nil {
			return nil, throwSyntax(err.Error())
		}
		return re, nil
	})
}

// regexMethod resolves a RegExp.prototype method or property bound to r.
func regexMethod(r *value.Regex, name string) (value.Value, bool) {
	switch name {
	case "source":
		return value.NewStr(r.Source), true
	case "flags":
		return value.NewStr(r.Flags), true
	case "global":
		return value.BoolOf(r.Global), true
	case "ignoreCase":
		return value.BoolOf(r.IgnoreCase), true
	case "multiline":
		return value.BoolOf(r.Multiline), true
	case "test":
		return NewNative(name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.BoolOf(r.Compiled.MatchString(value.ToString(arg(args, 0)))), nil
		}), true
	case "exec":
		return NewNative(name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			s := value.ToString(arg(args, 0))
			m := r.Compiled.FindStringSubmatch(s)
			if m == nil {
				return value.Null, nil
			}
			return regexMatchArray(m), nil
		}), true
	case "toString":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(r.String()), nil
		}), true
	}
	return nil, false
}

func regexMatchArray(m []string) *value.Array {
	out := make([]value.Value, len(m))
	for i, g := range m {
		out[i] = value.NewStr(g)
	}
	return value.NewArray(out...)
}
