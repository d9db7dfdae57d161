package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridops/nrldc-psp/internal/layout"
	"gridops/nrldc-psp/internal/models"
	"gridops/nrldc-psp/internal/pspparser"
)

func sampleExtraction() pspparser.Extraction {
	spec2A, _ := layout.Get(layout.Table2A)
	spec2C, _ := layout.Get(layout.Table2C)

	return pspparser.Extraction{
		Tables: map[string]pspparser.ExtractedTable{
			spec2A.Key: {
				Spec:    spec2A,
				Columns: []string{"state", "thermal"},
				Records: []models.Record{
					{
						"state":   models.TextValue("Punjab"),
						"thermal": models.NumericValue(decimal.RequireFromString("88.02")),
						"hydro":   models.AbsentValue(),
					},
				},
			},
			spec2C.Key: {
				Spec:    spec2C,
				Columns: []string{"state", "max_demand_met_of_the_day"},
				Records: nil,
			},
		},
	}
}

func TestBuildAndMarshal(t *testing.T) {
	extractedAt := time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)
	snap := Build("2025-01-15", "15.01.25_NR.pdf", sampleExtraction(), extractedAt)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.JSONEq(t, `"2025-01-15"`, string(decoded["report_date"]))
	assert.JSONEq(t, `"15.01.25_NR.pdf"`, string(decoded["source_file"]))
	assert.JSONEq(t, `"2025-01-15T08:30:00Z"`, string(decoded["extracted_at"]))

	// Each table key is an array of row objects: numbers unquoted, text
	// quoted, absent as null.
	assert.JSONEq(t, `[{"state": "Punjab", "thermal": 88.02, "hydro": null}]`,
		string(decoded["table_2A"]))

	var rows2A []map[string]any
	require.NoError(t, json.Unmarshal(decoded["table_2A"], &rows2A))
	require.Len(t, rows2A, 1)
	assert.Equal(t, "Punjab", rows2A[0]["state"])
	assert.Equal(t, 88.02, rows2A[0]["thermal"])

	// Located but empty: present as an empty array, not omitted.
	assert.JSONEq(t, `[]`, string(decoded["table_2C"]))
}

func TestBuildOmitsMissingTables(t *testing.T) {
	extraction := sampleExtraction()
	delete(extraction.Tables, "table_2C")

	snap := Build("2025-01-15", "x.pdf", extraction, time.Now())
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, has2A := decoded["table_2A"]
	_, has2C := decoded["table_2C"]
	assert.True(t, has2A)
	assert.False(t, has2C)
}

func TestWriteCreatesArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report_123")
	snap := Build("2025-01-15", "x.pdf", sampleExtraction(), time.Now())

	path, err := Write(dir, snap)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	assert.Equal(t, "nrdc_report_tables.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2025-01-15", decoded["report_date"])
}
