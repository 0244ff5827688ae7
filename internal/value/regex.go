package value

import (
	"fmt"
	"regexp"
)

// Regex is a compiled pattern plus its ECMAScript flag set. Go's RE2 engine
// (regexp) cannot express every ECMAScript regex feature (backreferences,
// lookaround); patterns using those constructs fail to compile and the
// builtin RegExp constructor surfaces that as a thrown error rather than
// silently degrading.
type Regex struct {
	Source     string
	Flags      string
	Global     bool
	IgnoreCase bool
	Multiline  bool
	Compiled   *regexp.Regexp
}

// NewRegex compiles source/flags into a Regex, translating the ECMAScript
// flag letters into RE2 inline flags understood by Go's regexp package.
func NewRegex(source, flags string) (*Regex, error) {
	r := &Regex{Source: source, Flags: flags}
	for _, f := range flags {
		switch f {
		case 'g':
			r.Global = true
		case 'i':
			r.IgnoreCase = true
		case 'm':
			r.Multiline = true
		default:
			return nil, fmt.Errorf("invalid regular expression flag %q", f)
		}
	}
	prefix := ""
	if r.IgnoreCase || r.Multiline {
		prefix = "(?"
		if r.IgnoreCase {
			prefix += "i"
		}
		if r.Multiline {
			prefix += "m"
		}
		prefix += ")"
	}
	compiled, err := regexp.Compile(prefix + source)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression: %w", err)
	}
	r.Compiled = compiled
	return r, nil
}

func (r *Regex) Kind() Kind     { return KindRegex }
func (r *Regex) String() string { return "/" + r.Source + "/" + r.Flags }
