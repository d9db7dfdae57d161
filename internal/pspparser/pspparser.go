// Package pspparser orchestrates the extraction of the daily PSP report:
// grid acquisition, sub-table location, header reconciliation and cell
// normalization. It is the single entry point the pipeline and the offline
// extract command parse reports through.
package pspparser

import (
	"errors"
	"fmt"

	"gridops/nrldc-psp/internal/grid"
	"gridops/nrldc-psp/internal/layout"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/models"
	"gridops/nrldc-psp/internal/normalize"
	"gridops/nrldc-psp/internal/parsererror"
	"gridops/nrldc-psp/internal/pdfgrid"
	"gridops/nrldc-psp/internal/subtable"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ExtractedTable is one successfully located sub-table: its spec, the
// surviving field names in order, and the normalized records.
type ExtractedTable struct {
	Spec    layout.Spec
	Columns []string
	Records []models.Record
}

// Extraction is the result of parsing one report document. Tables is keyed
// by the spec key (table_2A, table_2C); sub-tables whose start marker never
// matched are absent from the map and noted in Warnings.
type Extraction struct {
	Tables   map[string]ExtractedTable
	Warnings []string
}

// Parse extracts the configured sub-tables from the report at pdfPath using
// the default lattice extractor.
func Parse(pdfPath string) (*Extraction, error) {
	return ParseWithExtractor(pdfPath, pdfgrid.NewPlumberExtractor())
}

// ParseWithExtractor extracts the configured sub-tables using the provided
// extractor. Acquisition failures and a table-free document are fatal; a
// missing sub-table marker is a warning and the remaining tables are still
// extracted.
func ParseWithExtractor(pdfPath string, extractor pdfgrid.Extractor) (*Extraction, error) {
	log.Info("Parsing PSP report",
		logging.Field{Key: logging.FieldFile, Value: pdfPath})

	pages, err := extractor.ExtractTables(pdfPath)
	if err != nil {
		return nil, &parsererror.AcquisitionError{Source: pdfPath, Err: err}
	}

	rows, err := grid.Flatten(pages)
	if err != nil {
		if errors.Is(err, grid.ErrNoTables) {
			return nil, &parsererror.NoTablesError{Source: pdfPath}
		}
		return nil, err
	}

	log.Debug("Flattened table grids",
		logging.Field{Key: logging.FieldRows, Value: len(rows)})

	result := &Extraction{Tables: make(map[string]ExtractedTable)}
	for _, spec := range layout.All() {
		located, found, err := grid.Locate(rows, spec.StartMarker, spec.EndMarker)
		if err != nil {
			return nil, &parsererror.FormatError{Table: spec.Name, Reason: err.Error()}
		}
		if !found {
			warning := fmt.Sprintf("table %s: start marker not found", spec.Name)
			result.Warnings = append(result.Warnings, warning)
			log.Warn("Sub-table start marker not found",
				logging.Field{Key: logging.FieldTable, Value: spec.Name},
				logging.Field{Key: logging.FieldMarker, Value: spec.StartMarker})
			continue
		}

		materialized, warns := subtable.Build(located, spec.HeaderRows, spec.Columns)
		for _, w := range warns {
			warning := fmt.Sprintf("table %s: %s", spec.Name, w)
			result.Warnings = append(result.Warnings, warning)
			log.Warn("Sub-table degraded",
				logging.Field{Key: logging.FieldTable, Value: spec.Name},
				logging.Field{Key: logging.FieldReason, Value: w})
		}

		records := normalize.Apply(spec, materialized.Columns, materialized.Records)
		result.Tables[spec.Key] = ExtractedTable{
			Spec:    spec,
			Columns: fieldColumns(spec, materialized.Columns),
			Records: records,
		}

		log.Info("Extracted sub-table",
			logging.Field{Key: logging.FieldTable, Value: spec.Name},
			logging.Field{Key: logging.FieldRows, Value: len(records)},
			logging.Field{Key: logging.FieldColumns, Value: len(materialized.Columns)})
	}

	return result, nil
}

// fieldColumns maps surviving materialized column names to their persisted
// field names, keeping unmapped columns under their original name.
func fieldColumns(spec layout.Spec, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if field, ok := spec.FieldFor(col); ok {
			out = append(out, field)
		} else {
			out = append(out, col)
		}
	}
	return out
}
