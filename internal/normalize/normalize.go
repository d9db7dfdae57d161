// Package normalize coerces raw table cells into typed values. Numeric cells
// in the report use Indian comma grouping and a handful of placeholder
// spellings for missing data; clock times share columns with numbers in some
// header layouts and must never be coerced to a number.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"gridops/nrldc-psp/internal/layout"
	"gridops/nrldc-psp/internal/models"
)

// absentSpellings are the placeholder values treated as missing data,
// compared case-insensitively after trimming.
var absentSpellings = map[string]struct{}{
	"":     {},
	"-":    {},
	"n/a":  {},
	"null": {},
	"nan":  {},
}

// IsAbsentSpelling reports whether a raw cell is one of the placeholder
// spellings for missing data.
func IsAbsentSpelling(cell string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(cell))
	_, ok := absentSpellings[trimmed]
	return ok
}

// Numeric coerces a raw cell to a decimal number. Cells containing a colon
// are clock times, never numbers. Commas are digit grouping and are
// stripped. Anything unparseable is absent; coercion failures are silent.
func Numeric(cell string) models.Value {
	trimmed := strings.TrimSpace(cell)
	if strings.Contains(trimmed, ":") {
		return models.AbsentValue()
	}
	if IsAbsentSpelling(trimmed) {
		return models.AbsentValue()
	}
	cleaned := strings.ReplaceAll(trimmed, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return models.AbsentValue()
	}
	return models.NumericValue(d)
}

// Text coerces a raw cell to a trimmed text value. Only a blank cell is
// absent; the placeholder spellings are numeric conventions, so a time
// column printing "-" keeps the literal dash.
func Text(cell string) models.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return models.AbsentValue()
	}
	return models.TextValue(trimmed)
}

// Coerce applies the coercion for the given field kind.
func Coerce(kind layout.FieldKind, cell string) models.Value {
	if kind == layout.FieldNumeric {
		return Numeric(cell)
	}
	return Text(cell)
}

// Apply converts raw materialized records into normalized ones. Fields named
// in the spec's rename map are stored under their persisted name and coerced
// per the spec's field kind; surviving unmapped columns are carried as text
// under their original name.
func Apply(spec layout.Spec, columns []string, records []map[string]string) []models.Record {
	normalized := make([]models.Record, 0, len(records))
	for _, raw := range records {
		rec := make(models.Record, len(raw))
		for _, col := range columns {
			cell, ok := raw[col]
			if !ok {
				continue
			}
			if field, mapped := spec.FieldFor(col); mapped {
				rec[field] = Coerce(spec.KindOf(field), cell)
			} else {
				rec[col] = Text(cell)
			}
		}
		normalized = append(normalized, rec)
	}
	return normalized
}
