// Package frame holds the in-memory table model produced by the extractor.
package frame

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the dynamic type carried by a Value.
type Kind int

// Kinds of Value. A column's kind is the kind shared by its non-null cells.
const (
	KindNull   Kind = iota // missing cell or NA token
	KindString             // text
	KindInt                // 64-bit integer
	KindFloat              // float, possibly NaN
	KindBool               // true/false
	KindTime               // parsed date or timestamp
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single typed cell.
type Value struct {
	Kind Kind
	S    string
	I    int64
	F    float64
	B    bool
	T    time.Time
}

// Null returns a missing value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a text value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, I: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Time returns a date or timestamp value.
func Time(t time.Time) Value { return Value{Kind: KindTime, T: t} }

// IsNull reports whether v is missing.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Text renders the value the way it is written back into markup. Floats
// always keep a decimal point so that re-reading them infers a float again.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.S
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindFloat:
		if math.IsNaN(v.F) {
			return "nan"
		}
		if math.IsInf(v.F, 0) {
			if v.F > 0 {
				return "inf"
			}
			return "-inf"
		}
		s := strconv.FormatFloat(v.F, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case KindBool:
		if v.B {
			return "True"
		}
		return "False"
	case KindTime:
		if v.T.Hour() == 0 && v.T.Minute() == 0 && v.T.Second() == 0 && v.T.Nanosecond() == 0 {
			return v.T.Format("2006-01-02")
		}
		if v.T.Nanosecond() != 0 {
			return v.T.Format("2006-01-02 15:04:05.999999999")
		}
		return v.T.Format("2006-01-02 15:04:05")
	}
	return ""
}

// Equal reports whether two values have the same kind and payload. NaN
// floats compare equal to each other.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindString:
		return v.S == o.S
	case KindInt:
		return v.I == o.I
	case KindFloat:
		if math.IsNaN(v.F) && math.IsNaN(o.F) {
			return true
		}
		return v.F == o.F
	case KindBool:
		return v.B == o.B
	case KindTime:
		return v.T.Equal(o.T)
	}
	return false
}

// GoString is used by %#v in test failure messages.
func (v Value) GoString() string {
	if v.Kind == KindNull {
		return "null"
	}
	return v.Kind.String() + "(" + strconv.Quote(v.Text()) + ")"
}
