package domain

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single nullable table cell.
// Cells keep their textual form; typed access goes through Int and Float.
type Value struct {
	// Raw is the cell text as read from the source.
	Raw string

	// Valid is false for missing cells.
	Valid bool
}

// StringValue returns a non-null cell holding s.
func StringValue(s string) Value {
	return Value{Raw: s, Valid: true}
}

// IntValue returns a non-null cell holding n.
func IntValue(n int64) Value {
	return Value{Raw: strconv.FormatInt(n, 10), Valid: true}
}

// NullValue returns a missing cell.
func NullValue() Value {
	return Value{}
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool {
	return !v.Valid
}

// Int parses the cell as a base-10 int64.
func (v Value) Int() (int64, bool) {
	if !v.Valid {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v.Raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float parses the cell as a float64.
func (v Value) Float() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Key returns the canonical identifier form of the cell.
// Integral numbers compare by value so "7" and "7.0" share a key.
// Null cells have no key and never match anything.
func (v Value) Key() (string, bool) {
	if !v.Valid {
		return "", false
	}
	if n, ok := v.Int(); ok {
		return strconv.FormatInt(n, 10), true
	}
	if f, ok := v.Float(); ok && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return strconv.FormatInt(int64(f), 10), true
	}
	return strings.TrimSpace(v.Raw), true
}
