package builtins

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/ecmalite/internal/value"
)

// Console is the pluggable sink console.log writes to. Install binds its Log method
// as console.log; a host reassigns Out afterward (pkg/ecma's
// SetConsoleSink) to redirect output without reinstalling the global.
type Console struct {
	Out io.Writer
}

// Log writes args space-joined via ToString, followed by a newline.
func (c *Console) Log(args []value.Value) {
	if c.Out == nil {
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.ToString(a)
	}
	fmt.Fprintln(c.Out, strings.Join(parts, " "))
}

func newConsoleObject(c *Console) *value.Object {
	obj := value.NewObject()
	obj.Set("log", NewNative("console.log", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		c.Log(args)
		return value.Undefined, nil
	}))
	return obj
}

// newParseInt implements the global parseInt(string, radix?): leading
// whitespace and an optional sign are skipped, the longest valid-digit
// prefix for the radix is consumed, and anything that consumes zero digits
// yields NaN — parseInt never throws.
func newParseInt() *Native {
	return NewNative("parseInt", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		s := strings.TrimSpace(value.ToString(arg(args, 0)))
		radix := 10
		if len(args) > 1 && args[1].Kind() != value.KindUndefined {
			if r := int(value.ToNumber(args[1])); r != 0 {
				radix = r
			}
		}
		neg := false
		if strings.HasPrefix(s, "+") {
			s = s[1:]
		} else if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		}
		if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = s[2:]
		} else if (radix == 10 || radix == 0) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			radix = 16
			s = s[2:]
		}
		end := 0
		for end < len(s) && digitValue(s[end]) < radix {
			end++
		}
		if end == 0 {
			return value.Narrow(math.NaN()), nil
		}
		n, err := strconv.ParseInt(s[:end], radix, 64)
		if err != nil {
			if f, ferr := strconv.ParseFloat(s[:end], 64); ferr == nil {
				if neg {
					f = -f
				}
				return value.Narrow(f), nil
			}
			return value.Narrow(math.NaN()), nil
		}
		f := float64(n)
		if neg {
			f = -f
		}
		return value.Narrow(f), nil
	})
}

func digitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10
	default:
		return 99
	}
}

// newParseFloat implements the global parseFloat: the longest valid
// floating-point prefix, or NaN.
func newParseFloat() *Native {
	return NewNative("parseFloat", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		s := strings.TrimSpace(value.ToString(arg(args, 0)))
		end := 0
		seenDot, seenExp, seenDigit := false, false, false
		for end < len(s) {
			c := s[end]
			switch {
			case c >= '0' && c <= '9':
				seenDigit = true
			case c == '.' && !seenDot && !seenExp:
				seenDot = true
			case (c == 'e' || c == 'E') && seenDigit && !seenExp:
				seenExp = true
			case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
			default:
				goto done
			}
			end++
		}
	done:
		if !seenDigit {
			return value.Narrow(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return value.Narrow(math.NaN()), nil
		}
		return value.Narrow(f), nil
	})
}
