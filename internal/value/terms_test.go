package value

import (
	"math"
	"testing"
)

func TestEquality_Laws(t *testing.T) {
	nan := Number(math.NaN())
	if LooseEqual(nan, nan) {
		t.Errorf("NaN should never equal itself, even loosely")
	}
	if !LooseEqual(Null, Undefined) {
		t.Errorf("null == undefined should be true")
	}
	if !StrictEqual(Number(-0.0), Number(0)) {
		t.Errorf("-0 === 0 should be true")
	}
	if !StrictEqual(NewStr("x"), NewStr("x")) {
		t.Errorf("strict string equality should compare by value")
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		v    Value
		want float64
	}{
		{Null, 0}, {Bool(true), 1}, {Bool(false), 0},
		{NewStr(""), 0}, {NewStr("  "), 0}, {NewStr("42"), 42},
		{NewStr("0x1F"), 31}, {NewStr("abc"), math.NaN()},
	}
	for _, tt := range tests {
		got := ToNumber(tt.v)
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("ToNumber(%v) = %v, want NaN", tt.v, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ToNumber(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{Null, Undefined, Bool(false), Number(0), Number(math.NaN()), NewStr("")}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("expected %v to be falsy", v)
		}
	}
	truthy := []Value{Bool(true), Number(1), Number(-1), NewStr("0"), NewArray(), NewObject()}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("expected %v to be truthy", v)
		}
	}
}

func TestDivisionSignRules(t *testing.T) {
	inf := Div(Number(1), Number(0))
	if ToNumber(inf) != math.Inf(1) {
		t.Errorf("1/0 should be +Infinity, got %v", inf)
	}
	negInf := Div(Number(-1), Number(0))
	if ToNumber(negInf) != math.Inf(-1) {
		t.Errorf("-1/0 should be -Infinity, got %v", negInf)
	}
	zeroByInf := Div(Number(1), Number(math.Inf(1)))
	if ToNumber(zeroByInf) != 0 {
		t.Errorf("1/Infinity should be 0, got %v", zeroByInf)
	}
	nan := Div(Number(0), Number(0))
	if !math.IsNaN(ToNumber(nan)) {
		t.Errorf("0/0 should be NaN, got %v", nan)
	}
}

func TestAdd_NumberVsStringConcat(t *testing.T) {
	if got := Add(Number(2), Number(3)); ToNumber(got) != 5 {
		t.Errorf("2+3 = %v, want 5", got)
	}
	if got := ToString(Add(NewStr("a"), Null)); got != "anull" {
		t.Errorf("'a'+null = %q, want \"anull\"", got)
	}
	if got := ToString(Add(Add(NewStr("a"), Null), Undefined)); got != "anullundefined" {
		t.Errorf("'a'+null+undefined = %q, want \"anullundefined\"", got)
	}
}

func TestTypeOf(t *testing.T) {
	if TypeOf(Undefined) != "undefined" {
		t.Errorf("typeof undefined should be \"undefined\"")
	}
	if TypeOf(Null) != "object" {
		t.Errorf("typeof null should be \"object\"")
	}
}

func TestArrayToString(t *testing.T) {
	arr := NewArray(Number(1), Number(2), Number(3))
	if got := arr.String(); got != "1,2,3" {
		t.Errorf("array toString = %q, want %q", got, "1,2,3")
	}
}

func TestStr_UTF16CodeUnits(t *testing.T) {
	s := NewStr("a\U0001F600b") // emoji is a surrogate pair in UTF-16
	if s.Len() != 4 {
		t.Errorf("expected 4 code units (a, hi, lo, b), got %d", s.Len())
	}
}

func TestForInForOf(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	obj.Set("b", Number(2))
	keys := ForInKeys(obj)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("for-in keys = %v, want insertion order [a b]", keys)
	}
	vals := ForOfValues(obj)
	if len(vals) != 2 || ToNumber(vals[0]) != 1 || ToNumber(vals[1]) != 2 {
		t.Errorf("for-of values = %v", vals)
	}
}
