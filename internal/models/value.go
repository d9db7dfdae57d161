// Package models provides the data structures used throughout the application.
package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Numeric cells must serialize as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Value is a normalized table cell. It is either absent, a decimal number,
// or a text fragment (state names, HH:MM timestamps). Absent covers empty
// cells, placeholder dashes and anything that failed numeric coercion.
type Value struct {
	num  *decimal.Decimal
	text *string
}

// NumericValue returns a Value holding a decimal number.
func NumericValue(d decimal.Decimal) Value {
	return Value{num: &d}
}

// TextValue returns a Value holding a text fragment.
func TextValue(s string) Value {
	return Value{text: &s}
}

// AbsentValue returns the absent Value.
func AbsentValue() Value {
	return Value{}
}

// IsAbsent reports whether the value holds neither a number nor text.
func (v Value) IsAbsent() bool {
	return v.num == nil && v.text == nil
}

// Decimal returns the numeric payload, if any.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.num == nil {
		return decimal.Decimal{}, false
	}
	return *v.num, true
}

// Text returns the text payload, if any.
func (v Value) Text() (string, bool) {
	if v.text == nil {
		return "", false
	}
	return *v.text, true
}

// String renders the value for logs and debugging.
func (v Value) String() string {
	switch {
	case v.num != nil:
		return v.num.String()
	case v.text != nil:
		return *v.text
	default:
		return ""
	}
}

// MarshalJSON serializes the value as null, a JSON number or a JSON string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.num != nil:
		return v.num.MarshalJSON()
	case v.text != nil:
		return json.Marshal(*v.text)
	default:
		return []byte("null"), nil
	}
}

// Record is one materialized sub-table row, keyed by field name.
type Record map[string]Value

// DecimalField returns the numeric payload of the named field, or nil when
// the field is missing, absent or non-numeric.
func (r Record) DecimalField(name string) *decimal.Decimal {
	if v, ok := r[name]; ok {
		if d, ok := v.Decimal(); ok {
			return &d
		}
	}
	return nil
}

// TextField returns the text payload of the named field, or nil when the
// field is missing, absent or non-text.
func (r Record) TextField(name string) *string {
	if v, ok := r[name]; ok {
		if s, ok := v.Text(); ok {
			return &s
		}
	}
	return nil
}
