// Package snapshot writes the combined JSON artifact for one parsed report.
// The file name keeps the original artifact's spelling.
package snapshot

import (
	"encoding/json"
	"path/filepath"
	"time"

	"gridops/nrldc-psp/internal/fileutils"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/models"
	"gridops/nrldc-psp/internal/pspparser"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileName is the artifact written next to each downloaded report.
const FileName = "nrdc_report_tables.json"

// Snapshot is the combined artifact for one report. Each table key holds an
// array of row objects, one per data row. Sub-tables whose start marker was
// never found are omitted; located-but-empty tables appear as empty arrays.
type Snapshot struct {
	ReportDate  string                     `json:"report_date"`
	SourceFile  string                     `json:"source_file"`
	ExtractedAt string                     `json:"extracted_at"`
	Tables      map[string][]models.Record `json:"-"`
}

// MarshalJSON inlines the per-table record arrays beside the fixed fields so
// the artifact reads {"report_date": ..., "table_2A": [...], "table_2C": [...]}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Tables)+3)

	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = raw
		return nil
	}

	if err := put("report_date", s.ReportDate); err != nil {
		return nil, err
	}
	if err := put("source_file", s.SourceFile); err != nil {
		return nil, err
	}
	if err := put("extracted_at", s.ExtractedAt); err != nil {
		return nil, err
	}
	for key, records := range s.Tables {
		if err := put(key, records); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

// Build assembles the artifact from an extraction result.
func Build(reportDate, sourceFile string, extraction pspparser.Extraction, extractedAt time.Time) Snapshot {
	snap := Snapshot{
		ReportDate:  reportDate,
		SourceFile:  sourceFile,
		ExtractedAt: extractedAt.Format(time.RFC3339),
		Tables:      make(map[string][]models.Record, len(extraction.Tables)),
	}
	for key, table := range extraction.Tables {
		records := table.Records
		if records == nil {
			records = []models.Record{}
		}
		snap.Tables[key] = records
	}
	return snap
}

// Write serializes the snapshot into dir/FileName and returns the path.
func Write(dir string, snap Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if err := fileutils.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	log.Info("Snapshot written",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(snap.Tables)})
	return path, nil
}
