// Package pdfgrid acquires cell grids from report PDFs. The daily PSP report
// is a lattice-ruled document, so tables are extracted with the line-based
// strategy and handed downstream as plain string grids.
package pdfgrid

import (
	"fmt"

	pdfplumber "github.com/allieus/pdfplumber-go"
)

// Extractor defines the interface for extracting table grids from PDF files.
// The interface allows dependency injection so the parser can be tested with
// predefined grids instead of real documents.
type Extractor interface {
	// ExtractTables returns, per page, the cell grids of every table found
	// on that page. Cells are never nil; missing cells are empty strings.
	ExtractTables(pdfPath string) ([][][][]string, error)
}

// PlumberExtractor is the production implementation backed by pdfplumber's
// line-based (lattice) table extraction.
type PlumberExtractor struct{}

// NewPlumberExtractor creates a new PlumberExtractor instance.
func NewPlumberExtractor() *PlumberExtractor {
	return &PlumberExtractor{}
}

// ExtractTables walks every page of the document and extracts its tables.
func (e *PlumberExtractor) ExtractTables(pdfPath string) ([][][][]string, error) {
	doc, err := pdfplumber.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer doc.Close()

	pages := make([][][][]string, 0, doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		page, err := doc.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("page %d of %s: %w", i+1, pdfPath, err)
		}

		tables := page.ExtractTables(pdfplumber.WithTableStrategy("lines", "lines"))
		pageTables := make([][][]string, 0, len(tables))
		for _, table := range tables {
			rows := make([][]string, 0, len(table.Rows))
			for _, row := range table.Rows {
				rows = append(rows, append([]string(nil), row...))
			}
			pageTables = append(pageTables, rows)
		}
		pages = append(pages, pageTables)
	}

	return pages, nil
}

// MockExtractor implements Extractor for testing purposes. It returns
// predefined grids instead of reading a document.
type MockExtractor struct {
	MockPages [][][][]string
	MockErr   error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(pages [][][][]string, err error) *MockExtractor {
	return &MockExtractor{
		MockPages: pages,
		MockErr:   err,
	}
}

// ExtractTables returns the predefined grids or error.
func (e *MockExtractor) ExtractTables(pdfPath string) ([][][][]string, error) {
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockPages, nil
}
