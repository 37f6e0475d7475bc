package model

import "strconv"

// Value is a metric reading that is either a number or unavailable.
// Unavailable values render as the literal "N/A" instead of a zero that
// could be mistaken for a real reading.
type Value struct {
	val float64
	ok  bool
}

// Available wraps a numeric reading.
func Available(v float64) Value { return Value{val: v, ok: true} }

// Unavailable returns the missing-value marker.
func Unavailable() Value { return Value{} }

// Float returns the numeric reading and whether one is present.
func (v Value) Float() (float64, bool) { return v.val, v.ok }

// Format renders the value with a fixed number of decimals, or "N/A".
func (v Value) Format(decimals int) string {
	if !v.ok {
		return "N/A"
	}
	return strconv.FormatFloat(v.val, 'f', decimals, 64)
}
