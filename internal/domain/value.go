package domain

import (
	"math"
	"strconv"
	"time"
)

// ValueKind tags the content of a Value.
type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueText
	ValueNumber
	ValueDate
)

// Value is one cell of a dataset. The zero value is Missing, which is
// distinct from both 0 and "".
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Date   time.Time
}

// Missing returns the missing-value marker.
func Missing() Value { return Value{} }

// Text wraps a string cell.
func Text(s string) Value { return Value{Kind: ValueText, Text: s} }

// Number wraps a numeric cell. NaN and ±Inf are stored as Missing.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{Kind: ValueNumber, Number: f}
}

// Date wraps a date cell.
func Date(t time.Time) Value { return Value{Kind: ValueDate, Date: t} }

func (v Value) IsMissing() bool { return v.Kind == ValueMissing }

// Float returns the numeric content and whether it is present.
func (v Value) Float() (float64, bool) {
	if v.Kind != ValueNumber {
		return 0, false
	}
	return v.Number, true
}

// Time returns the date content and whether it is present.
func (v Value) Time() (time.Time, bool) {
	if v.Kind != ValueDate {
		return time.Time{}, false
	}
	return v.Date, true
}

// FloatPtr returns the numeric content as an optional.
func (v Value) FloatPtr() *float64 {
	f, ok := v.Float()
	if !ok {
		return nil
	}
	return &f
}

// TimePtr returns the date content as an optional.
func (v Value) TimePtr() *time.Time {
	t, ok := v.Time()
	if !ok {
		return nil
	}
	return &t
}

// Label is the categorical identity of a value: the text it displays as.
// Missing values share the empty label.
func (v Value) Label() string {
	return v.String()
}

// String renders the value for tables and legends.
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Equal compares two values by kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueText:
		return v.Text == o.Text
	case ValueNumber:
		return v.Number == o.Number
	case ValueDate:
		return v.Date.Equal(o.Date)
	default:
		return true
	}
}
