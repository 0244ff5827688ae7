package builtins

import (
	"time"

	"github.com/cwbudde/ecmalite/internal/value"
)

// newDateCtor builds the Date global, supporting its 0/1/3/6/7-argument
// constructor forms — now, from epoch millis, from (year, month, day[, h,
// m, s[, ms]]).
func newDateCtor() *Native {
	return NewNative("Date", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		switch len(args) {
		case 0:
			return value.NewDate(float64(time.Now().UnixMilli())), nil
		case 1:
			if s, ok := args[0].(value.Str); ok {
				return value.NewDate(dateParse(s.String())), nil
			}
			return value.NewDate(value.ToNumber(args[0])), nil
		default:
			year := int(value.ToNumber(arg(args, 0)))
			month := int(value.ToNumber(arg(args, 1)))
			day := 1
			if len(args) > 2 {
				day = int(value.ToNumber(args[2]))
			}
			hour, min, sec, ms := 0, 0, 0, 0
			if len(args) > 3 {
				hour = int(value.ToNumber(args[3]))
			}
			if len(args) > 4 {
				min = int(value.ToNumber(args[4]))
			}
			if len(args) > 5 {
				sec = int(value.ToNumber(args[5]))
			}
			if len(args) > 6 {
				ms = int(value.ToNumber(args[6]))
			}
			t := time.Date(year, time.Month(month+1), day, hour, min, sec, ms*int(time.Millisecond), time.UTC)
			return value.NewDate(float64(t.UnixMilli())), nil
		}
	})
}

func dateStatic(name string) (value.Value, bool) {
	switch name {
	case "now":
		return NewNative("Date.now", func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.Narrow(float64(time.Now().UnixMilli())), nil
		}), true
	case "parse":
		return NewNative("Date.parse", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			return value.Narrow(dateParse(value.ToString(arg(args, 0)))), nil
		}), true
	}
	return nil, false
}

// dateParse implements Date.parse: ISO 8601, falling back to NaN (an
// "Invalid Date") for anything else rather than guessing at a locale format
// the way real engines' non-standard fallback parsing does.
func dateParse(s string) float64 {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli())
		}
	}
	var nan float64
	return nan / zeroFloat()
}

func zeroFloat() float64 { return 0 }

// dateMethod resolves a Date.prototype method bound to receiver d.
func dateMethod(d *value.Date, name string) (value.Value, bool) {
	switch name {
	case "getTime", "valueOf":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.Narrow(d.Millis), nil
		}), true
	case "setTime":
		return NewNative(name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
			d.Millis = value.ToNumber(arg(args, 0))
			return value.Narrow(d.Millis), nil
		}), true
	case "toString":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(d.String()), nil
		}), true
	case "toISOString":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(d.ToISOString()), nil
		}), true
	case "toUTCString":
		return NewNative(name, func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
			return value.NewStr(d.ToUTCString()), nil
		}), true
	case "getFullYear":
		return dateGetter(d, func(t time.Time) int { return t.Year() }), true
	case "getMonth":
		return dateGetter(d, func(t time.Time) int { return int(t.Month()) - 1 }), true
	case "getDate":
		return dateGetter(d, func(t time.Time) int { return t.Day() }), true
	case "getDay":
		return dateGetter(d, func(t time.Time) int { return int(t.Weekday()) }), true
	case "getHours":
		return dateGetter(d, func(t time.Time) int { return t.Hour() }), true
	case "getMinutes":
		return dateGetter(d, func(t time.Time) int { return t.Minute() }), true
	case "getSeconds":
		return dateGetter(d, func(t time.Time) int { return t.Second() }), true
	case "getMilliseconds":
		return dateGetter(d, func(t time.Time) int { return t.Nanosecond() / 1e6 }), true
	case "setFullYear":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(v, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}), true
	case "setMonth":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), time.Month(v+1), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}), true
	case "setDate":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), v, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}), true
	case "setHours":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), v, t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}), true
	case "setMinutes":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), v, t.Second(), t.Nanosecond(), time.UTC)
		}), true
	case "setSeconds":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), v, t.Nanosecond(), time.UTC)
		}), true
	case "setMilliseconds":
		return dateSetter(d, func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), v*int(time.Millisecond), time.UTC)
		}), true
	}
	return nil, false
}

// dateGetter wraps a time.Time accessor as a zero-argument Date method.
func dateGetter(d *value.Date, f func(time.Time) int) *Native {
	return NewNative("get", func(_ value.Invoker, _ value.Value, _ []value.Value) (value.Value, error) {
		if d.Millis != d.Millis {
			return value.Narrow(d.Millis), nil // Invalid Date getters return NaN
		}
		return value.Narrow(float64(f(d.Time()))), nil
	})
}

// dateSetter wraps a time.Time field rewrite as a one-argument Date method.
// time.Date itself implements the overflow-rolls-forward behavior ECMAScript
// expects (setDate(32) rolling into next month) since Go's calendar
// normalizes out-of-range fields instead of rejecting them.
func dateSetter(d *value.Date, f func(time.Time, int) time.Time) *Native {
	return NewNative("set", func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		v := int(value.ToNumber(arg(args, 0)))
		t := f(d.Time(), v)
		d.Millis = float64(t.UnixMilli())
		return value.Narrow(d.Millis), nil
	})
}
