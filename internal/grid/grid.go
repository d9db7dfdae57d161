// Package grid holds the pure grid operations the extraction pipeline is
// built from: flattening per-page table grids into one row stream and
// locating marker-bounded sub-tables inside it.
package grid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoTables is returned when the extractor produced zero tables across the
// whole document.
var ErrNoTables = errors.New("no tables found in document")

// Flatten concatenates every table's rows, in page order then table order,
// into a single flat row stream. Rows whose cells are all blank after
// trimming are dropped; a blank filler row between a marker and its header
// rows would otherwise shift the header window of the located span.
func Flatten(pages [][][][]string) ([][]string, error) {
	var rows [][]string
	tables := 0
	for _, page := range pages {
		for _, table := range page {
			tables++
			for _, row := range table {
				if rowBlank(row) {
					continue
				}
				rows = append(rows, row)
			}
		}
	}
	if tables == 0 {
		return nil, ErrNoTables
	}
	return rows, nil
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Locate returns the rows between the first row matching startPattern and
// the first later row matching endPattern. The span is half-open: the marker
// rows themselves are excluded. A row matches when any of its cells matches
// the case-insensitive pattern.
//
// A missing start marker is not an error; found is false and the caller
// decides how loudly to complain. A missing end marker extends the span to
// the end of the input.
func Locate(rows [][]string, startPattern, endPattern string) (located [][]string, found bool, err error) {
	startRe, err := regexp.Compile("(?i)" + startPattern)
	if err != nil {
		return nil, false, err
	}
	endRe, err := regexp.Compile("(?i)" + endPattern)
	if err != nil {
		return nil, false, err
	}

	start := -1
	for i, row := range rows {
		if rowMatches(row, startRe) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, false, nil
	}

	end := len(rows)
	for i := start + 1; i < len(rows); i++ {
		if rowMatches(rows[i], endRe) {
			end = i
			break
		}
	}

	return rows[start+1 : end], true, nil
}

func rowMatches(row []string, re *regexp.Regexp) bool {
	for _, cell := range row {
		if re.MatchString(cell) {
			return true
		}
	}
	return false
}
