package nrldc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridops/nrldc-psp/internal/parsererror"
)

var testDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func TestLatestReportReturnsFirstDocument(t *testing.T) {
	var gotPath, gotQuery string
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"recordsFiltered": 2,
			"data": [
				{"file_name": "15.01.25_NR.pdf", "title": "Daily PSP Report 15-01-2025"},
				{"file_name": "old.pdf", "title": "stale entry"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	doc, err := client.LatestReport(context.Background(), testDate)

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "15.01.25_NR.pdf", doc.FileName)
	assert.Equal(t, "Daily PSP Report 15-01-2025", doc.Title)

	assert.Equal(t, "/get-documents-list/111", gotPath)
	assert.Equal(t, "start_date=15-01-2025&end_date=15-01-2025", gotQuery)
	assert.Equal(t, "Mozilla/5.0", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, "XMLHttpRequest", gotHeaders.Get("X-Requested-With"))
	assert.Equal(t, server.URL+"/reports/daily-psp", gotHeaders.Get("Referer"))
}

func TestLatestReportNoReportPublished(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "zero records filtered",
			body: `{"recordsFiltered": 0, "data": []}`,
		},
		{
			name: "empty data despite count",
			body: `{"recordsFiltered": 1, "data": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			doc, err := client.LatestReport(context.Background(), testDate)

			require.NoError(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestLatestReportServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	doc, err := client.LatestReport(context.Background(), testDate)

	require.Error(t, err)
	assert.Nil(t, doc)

	var acqErr *parsererror.AcquisitionError
	require.True(t, errors.As(err, &acqErr))
	assert.Contains(t, acqErr.Error(), "503")
}

func TestLatestReportMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.LatestReport(context.Background(), testDate)

	var acqErr *parsererror.AcquisitionError
	require.True(t, errors.As(err, &acqErr))
}

func TestDownloadWritesFile(t *testing.T) {
	content := []byte("%PDF-1.7 fake report body")
	var gotRawQuery, gotAny string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download-file" {
			http.NotFound(w, r)
			return
		}
		gotRawQuery = r.URL.RawQuery
		gotAny = r.URL.Query().Get("any")
		_, _ = w.Write(content)
	}))
	defer server.Close()

	destDir := filepath.Join(t.TempDir(), "report_123")
	client := NewClient(server.URL, 5*time.Second)
	doc := &Document{FileName: "15.01.25_NR.pdf"}

	path, err := client.Download(context.Background(), doc, destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "15.01.25_NR.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, data)

	assert.Equal(t, "Reports/Daily/Daily PSP Report/15.01.25_NR.pdf", gotAny)
	assert.Contains(t, gotRawQuery, "Daily%20PSP%20Report")
	assert.NotContains(t, gotRawQuery, "+")
}

func TestDownloadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	destDir := t.TempDir()
	client := NewClient(server.URL, 5*time.Second)
	doc := &Document{FileName: "missing.pdf"}

	_, err := client.Download(context.Background(), doc, destDir)

	var acqErr *parsererror.AcquisitionError
	require.True(t, errors.As(err, &acqErr))
	assert.NoFileExists(t, filepath.Join(destDir, "missing.pdf"))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", 10*time.Second)
	assert.Equal(t, DefaultBaseURL, client.baseURL)

	trimmed := NewClient("https://example.test/", time.Second)
	assert.Equal(t, "https://example.test", trimmed.baseURL)
}

func TestEscapeReportPath(t *testing.T) {
	got := escapeReportPath("Reports/Daily/Daily PSP Report/15.01.25_NR.pdf")
	assert.Equal(t, "Reports/Daily/Daily%20PSP%20Report/15.01.25_NR.pdf", got)
	assert.True(t, strings.HasPrefix(got, "Reports/"))
}
