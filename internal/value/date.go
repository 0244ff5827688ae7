package value

import (
	"fmt"
	"time"
)

// Date is an instant in time stored as epoch milliseconds, the same
// representation ECMAScript uses internally; getters/setters convert to a
// UTC display calendar on demand — no local-timezone handling.
type Date struct {
	Millis float64
}

// NewDate builds a Date from epoch milliseconds.
func NewDate(millis float64) *Date { return &Date{Millis: millis} }

func (d *Date) Kind() Kind { return KindDate }

func (d *Date) Time() time.Time {
	sec := int64(d.Millis) / 1000
	nsec := (int64(d.Millis) % 1000) * int64(time.Millisecond)
	return time.Unix(sec, nsec).UTC()
}

func (d *Date) String() string {
	if d.Millis != d.Millis {
		return "Invalid Date"
	}
	return d.Time().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}

// ToISOString renders the Date per Date.prototype.toISOString.
func (d *Date) ToISOString() string {
	if d.Millis != d.Millis {
		return "Invalid Date"
	}
	t := d.Time()
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03dZ",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
}

// ToUTCString renders the Date per Date.prototype.toUTCString.
func (d *Date) ToUTCString() string {
	if d.Millis != d.Millis {
		return "Invalid Date"
	}
	return d.Time().Format("Mon, 02 Jan 2006 15:04:05 GMT")
}
