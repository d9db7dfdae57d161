// Package subtable turns a located sub-table grid into named, materialized
// rows: it reconciles the multi-row header against the expected column list,
// pads ragged rows to the table width, drops duplicate-named columns, and
// prunes rows and columns that carry no data.
package subtable

import (
	"fmt"
	"regexp"
	"strings"

	"gridops/nrldc-psp/internal/normalize"
)

// Materialized is the output of Build: the surviving column names in order,
// and one raw string record per surviving data row.
type Materialized struct {
	Columns []string
	Records []map[string]string
}

var carriageRe = regexp.MustCompile(`\s*\r\s*`)

// CleanName collapses carriage-return runs in a header name to a single
// space and trims it. Wrapped header cells arrive with embedded line breaks.
func CleanName(name string) string {
	return strings.TrimSpace(carriageRe.ReplaceAllString(name, " "))
}

// MergeHeaderRows merges a two-row header into one name per column. Cells
// are compared after trimming; missing cells count as blank.
//
// Per column: both blank yields Unnamed_{idx}; a blank child keeps the
// parent; a blank parent keeps the child; a child that already starts with
// the parent keeps the child; otherwise the two are joined with a space.
func MergeHeaderRows(parent, child []string, width int) []string {
	names := make([]string, width)
	for i := 0; i < width; i++ {
		p := ""
		if i < len(parent) {
			p = strings.TrimSpace(parent[i])
		}
		c := ""
		if i < len(child) {
			c = strings.TrimSpace(child[i])
		}
		switch {
		case p == "" && c == "":
			names[i] = fmt.Sprintf("Unnamed_%d", i)
		case c == "":
			names[i] = p
		case p == "":
			names[i] = c
		case strings.HasPrefix(c, p):
			names[i] = c
		default:
			names[i] = p + " " + c
		}
	}
	return names
}

// Build materializes a located sub-table. headerRows says how many leading
// rows are header (0, 1 or 2); anything else degrades to headerless with a
// warning. fixed, when non-nil, positionally replaces the reconciled names:
// the fixed list is authoritative for naming, the observed width for shape,
// and columns beyond the fixed list are named Unnamed_Col_{i}.
func Build(located [][]string, headerRows int, fixed []string) (Materialized, []string) {
	var warnings []string
	if len(located) == 0 {
		return Materialized{}, nil
	}

	width := 0
	for _, row := range located {
		if len(row) > width {
			width = len(row)
		}
	}

	h := headerRows
	switch {
	case h < 0:
		h = 0
	case h > 2:
		warnings = append(warnings,
			fmt.Sprintf("unsupported header shape (%d rows); treating all rows as data", headerRows))
		h = 0
	case h > len(located):
		warnings = append(warnings,
			fmt.Sprintf("section has %d rows, fewer than %d header rows; treating all rows as data", len(located), headerRows))
		h = 0
	}

	var names []string
	switch h {
	case 2:
		names = MergeHeaderRows(located[0], located[1], width)
	case 1:
		names = make([]string, width)
		copy(names, located[0])
	default:
		names = make([]string, width)
	}
	for i := range names {
		names[i] = CleanName(names[i])
	}

	if fixed != nil {
		names = make([]string, width)
		for i := 0; i < width; i++ {
			if i < len(fixed) {
				names[i] = fixed[i]
			} else {
				names[i] = fmt.Sprintf("Unnamed_Col_%d", i)
			}
		}
	} else {
		for i, name := range names {
			if name == "" {
				names[i] = fmt.Sprintf("Unnamed_Col_%d", i)
			}
		}
	}

	// Duplicate names keep the first occurrence; later duplicates are
	// dropped entirely, cells included.
	type column struct {
		name string
		idx  int
	}
	seen := make(map[string]bool, len(names))
	var kept []column
	for i, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		kept = append(kept, column{name: name, idx: i})
	}

	var records []map[string]string
	for _, row := range located[h:] {
		rec := make(map[string]string, len(kept))
		allAbsent := true
		for _, col := range kept {
			cell := ""
			if col.idx < len(row) {
				cell = row[col.idx]
			}
			rec[col.name] = cell
			if !normalize.IsAbsentSpelling(cell) {
				allAbsent = false
			}
		}
		if allAbsent {
			continue
		}
		records = append(records, rec)
	}

	// Column pruning runs after row pruning. With zero surviving rows the
	// column set is kept as-is.
	columns := make([]string, 0, len(kept))
	for _, col := range kept {
		if len(records) > 0 && columnAllAbsent(records, col.name) {
			for _, rec := range records {
				delete(rec, col.name)
			}
			continue
		}
		columns = append(columns, col.name)
	}

	return Materialized{Columns: columns, Records: records}, warnings
}

func columnAllAbsent(records []map[string]string, name string) bool {
	for _, rec := range records {
		if !normalize.IsAbsentSpelling(rec[name]) {
			return false
		}
	}
	return true
}
