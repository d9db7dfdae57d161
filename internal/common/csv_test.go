package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridops/nrldc-psp/internal/models"
)

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "nested", "psp_table_2a.csv")

	thermal := decimal.RequireFromString("88.02")
	rows := []models.Table2ARow{
		{ReportDate: "2025-01-15", State: "Punjab", Thermal: &thermal},
		{ReportDate: "2025-01-15", State: "Haryana"},
	}

	err := WriteCSVFile(rows, csvPath)
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	// Header comes from the csv struct tags.
	assert.True(t, strings.HasPrefix(lines[0], "report_date,state,thermal"))
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-15,Punjab,88.02"))

	// Nil decimals come out as empty cells.
	assert.True(t, strings.HasPrefix(lines[2], "2025-01-15,Haryana,,"))
}

func TestWriteCSVFileNilRows(t *testing.T) {
	err := WriteCSVFile[models.Table2ARow](nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestWriteCSVFileEmptySlice(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "empty.csv")

	err := WriteCSVFile([]models.Table2CRow{}, csvPath)
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)

	// Header only.
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "max_demand_met_of_the_day")
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	assert.Equal(t, ';', Delimiter)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "semi.csv")
	rows := []models.Table2ARow{{ReportDate: "2025-01-15", State: "Punjab"}}

	require.NoError(t, WriteCSVFile(rows, csvPath))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "report_date;state")
}
