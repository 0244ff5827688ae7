package builtins

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cwbudde/ecmalite/internal/value"
)

// newStringCtor builds the String global: called with an argument, converts
// it via ToString; called with none, returns the empty string. String
// objects (new String("x")) are out of scope — this engine has no boxed
// primitives, so `new String(x)` yields the same Str a bare call would.
func newStringCtor() *Native {
	return NewNative("String", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.NewStr(""), nil
		}
		return value.NewStr(value.ToString(args[0])), nil
	})
}

// stringStatic resolves String.fromCharCode/fromCodePoint.
func stringStatic(name string) (value.Value, bool) {
	switch name {
	case "fromCharCode":
		return NewNative("String.fromCharCode", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			units := make([]uint16, len(args))
			for i, a := range args {
				units[i] = uint16(int64(value.ToNumber(a)))
			}
			return value.StrFromUnits(units), nil
		}), true
	case "fromCodePoint":
		return NewNative("String.fromCodePoint", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			var sb strings.Builder
			for _, a := range args {
				sb.WriteRune(rune(int64(value.ToNumber(a))))
			}
			return value.NewStr(sb.String()), nil
		}), true
	}
	return nil, false
}

// stringMethod resolves a String.prototype method bound to receiver s.
func stringMethod(s value.Str, name string) (value.Value, bool) {
	str := s.String()
	bound := func(fn NativeFunc) (value.Value, bool) { return NewNative(name, fn), true }

	switch name {
	case "indexOf":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			needle := value.ToString(arg(args, 0))
			from := 0
			if len(args) > 1 {
				from = clampIndex(len(str), args[1])
			}
			if from > len(str) {
				from = len(str)
			}
			idx := strings.Index(str[from:], needle)
			if idx < 0 {
				return value.Narrow(-1), nil
			}
			return value.Narrow(float64(from + idx)), nil
		})
	case "lastIndexOf":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.Narrow(float64(strings.LastIndex(str, value.ToString(arg(args, 0))))), nil
		})
	case "startsWith":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.BoolOf(strings.HasPrefix(str, value.ToString(arg(args, 0)))), nil
		})
	case "endsWith":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.BoolOf(strings.HasSuffix(str, value.ToString(arg(args, 0)))), nil
		})
	case "includes":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.BoolOf(strings.Contains(str, value.ToString(arg(args, 0)))), nil
		})
	case "charAt":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			i := int(value.ToNumber(arg(args, 0)))
			if i < 0 || i >= s.Len() {
				return value.NewStr(""), nil
			}
			return value.StrFromUnits([]uint16{s.Unit(i)}), nil
		})
	case "charCodeAt":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			i := int(value.ToNumber(arg(args, 0)))
			if i < 0 || i >= s.Len() {
				return value.Narrow(math.NaN()), nil
			}
			return value.Narrow(float64(s.Unit(i))), nil
		})
	case "codePointAt":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			i := int(value.ToNumber(arg(args, 0)))
			if i < 0 || i >= s.Len() {
				return value.Undefined, nil
			}
			hi := rune(s.Unit(i))
			if !utf16.IsSurrogate(hi) || i+1 >= s.Len() {
				return value.Narrow(float64(s.Unit(i))), nil
			}
			r := utf16.DecodeRune(hi, rune(s.Unit(i+1)))
			if r == utf8.RuneError {
				return value.Narrow(float64(s.Unit(i))), nil
			}
			return value.Narrow(float64(r)), nil
		})
	case "concat":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			var sb strings.Builder
			sb.WriteString(str)
			for _, a := range args {
				sb.WriteString(value.ToString(a))
			}
			return value.NewStr(sb.String()), nil
		})
	case "slice":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			start, end := sliceBounds(s.Len(), args)
			return s.Slice(start, end), nil
		})
	case "substring":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n := s.Len()
			start := clampNonNegative(n, arg(args, 0))
			end := n
			if len(args) > 1 && args[1].Kind() != value.KindUndefined {
				end = clampNonNegative(n, args[1])
			}
			if start > end {
				start, end = end, start
			}
			return s.Slice(start, end), nil
		})
	case "split":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return stringSplit(str, arg(args, 0)), nil
		})
	case "toLowerCase":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(strings.ToLower(str)), nil
		})
	case "toUpperCase":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(strings.ToUpper(str)), nil
		})
	case "trim":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(strings.TrimSpace(str)), nil
		})
	case "trimStart":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(strings.TrimLeft(str, " \t\n\r\v\f")), nil
		})
	case "trimEnd":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(strings.TrimRight(str, " \t\n\r\v\f")), nil
		})
	case "padStart":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.NewStr(stringPad(str, args, true)), nil
		})
	case "padEnd":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.NewStr(stringPad(str, args, false)), nil
		})
	case "repeat":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			n := int(value.ToNumber(arg(args, 0)))
			if n < 0 {
				return nil, throwRange("Invalid count value")
			}
			return value.NewStr(strings.Repeat(str, n)), nil
		})
	case "replace":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return stringReplace(call, str, arg(args, 0), arg(args, 1), false)
		})
	case "replaceAll":
		return bound(func(call value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return stringReplace(call, str, arg(args, 0), arg(args, 1), true)
		})
	case "match":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return stringMatch(str, arg(args, 0)), nil
		})
	case "search":
		return bound(func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			re, err := toRegex(arg(args, 0))
			if err != nil {
				return nil, err
			}
			loc := re.Compiled.FindStringIndex(str)
			if loc == nil {
				return value.Narrow(-1), nil
			}
			return value.Narrow(float64(utf8.RuneCountInString(str[:loc[0]]))), nil
		})
	case "toString", "valueOf":
		return bound(func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return s, nil
		})
	}
	return nil, false
}

func clampNonNegative(length int, v value.Value) int {
	n := int(value.ToNumber(v))
	if n < 0 || value.ToNumber(v) != value.ToNumber(v) {
		n = 0
	}
	if n > length {
		n = length
	}
	return n
}

func stringPad(str string, args []value.Value, start bool) string {
	target := int(value.ToNumber(arg(args, 0)))
	pad := " "
	if len(args) > 1 && args[1].Kind() != value.KindUndefined {
		pad = value.ToString(args[1])
	}
	need := target - utf8.RuneCountInString(str)
	if need <= 0 || pad == "" {
		return str
	}
	var sb strings.Builder
	for sb.Len() < need {
		sb.WriteString(pad)
	}
	padding := string([]rune(sb.String())[:need])
	if start {
		return padding + str
	}
	return str + padding
}

func stringSplit(str string, sep value.Value) *value.Array {
	if sep.Kind() == value.KindUndefined {
		return value.NewArray(value.NewStr(str))
	}
	if re, ok := sep.(*value.Regex); ok {
		parts := re.Compiled.Split(str, -1)
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.NewStr(p)
		}
		return value.NewArray(out...)
	}
	s := value.ToString(sep)
	if s == "" {
		out := make([]value.Value, 0, len(str))
		for _, r := range str {
			out = append(out, value.NewStr(string(r)))
		}
		return value.NewArray(out...)
	}
	parts := strings.Split(str, s)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.NewStr(p)
	}
	return value.NewArray(out...)
}

func toRegex(v value.Value) (*value.Regex, error) {
	if re, ok := v.(*value.Regex); ok {
		return re, nil
	}
	re, err := value.NewRegex(value.ToString(v), "")
	if err != nil {
		return nil, throwSyntax(err.Error())
	}
	return re, nil
}

func stringMatch(str string, pattern value.Value) value.Value {
	re, err := toRegex(pattern)
	if err != nil {
		return value.Null
	}
	if re.Global {
		all := re.Compiled.FindAllString(str, -1)
		if all == nil {
			return value.Null
		}
		out := make([]value.Value, len(all))
		for i, m := range all {
			out[i] = value.NewStr(m)
		}
		return value.NewArray(out...)
	}
	m := re.Compiled.FindStringSubmatch(str)
	if m == nil {
		return value.Null
	}
	return regexMatchArray(m)
}

// stringReplace implements replace/replaceAll: the replacement argument is
// either a literal string (with $& / $1.. backreferences when the pattern
// is a Regex) or a callback invoked per match.
func stringReplace(call value.Invoker, str string, pattern, repl value.Value, all bool) (value.Value, error) {
	fn, isFunc := repl.(value.Function)

	re, isRegex := pattern.(*value.Regex)
	if !isRegex {
		needle := value.ToString(pattern)
		replaceOne := func(match string) (string, error) {
			if isFunc {
				idx := strings.Index(str, match)
				r, err := fn.Call(call, value.Undefined, []value.Value{value.NewStr(match), value.Narrow(float64(idx)), value.NewStr(str)})
				if err != nil {
					return "", err
				}
				return value.ToString(r), nil
			}
			return value.ToString(repl), nil
		}
		if strings.Index(str, needle) < 0 {
			return value.NewStr(str), nil
		}
		replacement, err := replaceOne(needle)
		if err != nil {
			return nil, err
		}
		count := 1
		if all {
			count = -1
		}
		return value.NewStr(strings.Replace(str, needle, replacement, count)), nil
	}

	global := all || re.Global
	matches := re.Compiled.FindAllStringSubmatchIndex(str, -1)
	if matches == nil {
		return value.NewStr(str), nil
	}
	if !global {
		matches = matches[:1]
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(str[last:m[0]])
		groups := make([]string, 0, len(m)/2)
		for g := 0; g < len(m)/2; g++ {
			if m[2*g] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, str[m[2*g]:m[2*g+1]])
		}
		if isFunc {
			callArgs := make([]value.Value, 0, len(groups)+2)
			for _, g := range groups {
				callArgs = append(callArgs, value.NewStr(g))
			}
			callArgs = append(callArgs, value.Narrow(float64(m[0])), value.NewStr(str))
			r, err := fn.Call(call, value.Undefined, callArgs)
			if err != nil {
				return nil, err
			}
			sb.WriteString(value.ToString(r))
		} else {
			sb.WriteString(expandReplacement(value.ToString(repl), groups))
		}
		last = m[1]
	}
	sb.WriteString(str[last:])
	return value.NewStr(sb.String()), nil
}

// expandReplacement handles $& and $1-$9 backreferences in a literal
// replacement string, the subset of the replacement grammar worth
// supporting without a full template-token parser.
func expandReplacement(tmpl string, groups []string) string {
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '$' && i+1 < len(tmpl) {
			next := tmpl[i+1]
			if next == '&' && len(groups) > 0 {
				sb.WriteString(groups[0])
				i++
				continue
			}
			if next >= '1' && next <= '9' {
				n := int(next - '0')
				if n < len(groups) {
					sb.WriteString(groups[n])
					i++
					continue
				}
			}
		}
		sb.WriteByte(tmpl[i])
	}
	return sb.String()
}
