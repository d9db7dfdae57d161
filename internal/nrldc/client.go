// Package nrldc talks to the nrldc.in document endpoints: the JSON listing
// that announces which reports exist for a date, and the file download
// endpoint behind it. Requests carry the browser-shaped headers the site
// expects; responses are never retried, the next scheduled run is the retry.
package nrldc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gridops/nrldc-psp/internal/dateutils"
	"gridops/nrldc-psp/internal/fileutils"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	// DefaultBaseURL is the production NRLDC site.
	DefaultBaseURL = "https://nrldc.in"

	// dailyPSPCategory is the documents-list category of the daily PSP report.
	dailyPSPCategory = 111

	// reportPathPrefix is where daily PSP files live on the document server.
	reportPathPrefix = "Reports/Daily/Daily PSP Report/"
)

// Document is one entry of the documents listing.
type Document struct {
	FileName string `json:"file_name"`
	Title    string `json:"title"`
}

// documentsList is the listing endpoint's response shape.
type documentsList struct {
	RecordsFiltered int        `json:"recordsFiltered"`
	Data            []Document `json:"data"`
}

// Client fetches report listings and files from the NRLDC site.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against baseURL (DefaultBaseURL when empty)
// with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LatestReport returns the daily PSP document listed for date. A nil
// document with nil error means no report has been published for that date,
// which is routine on weekends and holidays.
func (c *Client) LatestReport(ctx context.Context, date time.Time) (*Document, error) {
	queryDate := dateutils.ToQueryDate(date)
	listURL := fmt.Sprintf("%s/get-documents-list/%d?start_date=%s&end_date=%s",
		c.baseURL, dailyPSPCategory, queryDate, queryDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, &parsererror.AcquisitionError{Source: listURL, Err: err}
	}
	c.decorate(req)

	log.Debug("Fetching document listing",
		logging.Field{Key: logging.FieldURL, Value: listURL})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &parsererror.AcquisitionError{Source: listURL, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close listing response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &parsererror.AcquisitionError{
			Source: listURL,
			Err:    fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	var list documentsList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &parsererror.AcquisitionError{Source: listURL, Err: err}
	}

	if list.RecordsFiltered == 0 || len(list.Data) == 0 {
		log.Info("No report published for date",
			logging.Field{Key: logging.FieldReportDate, Value: dateutils.ToISODate(date)})
		return nil, nil
	}

	doc := list.Data[0]
	log.Info("Report listed",
		logging.Field{Key: logging.FieldReportDate, Value: dateutils.ToISODate(date)},
		logging.Field{Key: logging.FieldFile, Value: doc.FileName})
	return &doc, nil
}

// Download streams the document into destDir, creating the directory as
// needed, and returns the saved file path.
func (c *Client) Download(ctx context.Context, doc *Document, destDir string) (string, error) {
	downloadURL := c.baseURL + "/download-file?any=" + escapeReportPath(reportPathPrefix+doc.FileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", &parsererror.AcquisitionError{Source: downloadURL, Err: err}
	}
	c.decorate(req)

	log.Info("Downloading report",
		logging.Field{Key: logging.FieldURL, Value: downloadURL})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &parsererror.AcquisitionError{Source: downloadURL, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close download response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &parsererror.AcquisitionError{
			Source: downloadURL,
			Err:    fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	destPath := filepath.Join(destDir, doc.FileName)
	out, err := fileutils.CreateFile(destPath)
	if err != nil {
		return "", err
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if removeErr := os.Remove(destPath); removeErr != nil {
			log.WithError(removeErr).Warn("Failed to remove partial download",
				logging.Field{Key: logging.FieldFile, Value: destPath})
		}
		return "", &parsererror.AcquisitionError{Source: downloadURL, Err: err}
	}

	log.Info("Report downloaded",
		logging.Field{Key: logging.FieldFile, Value: destPath},
		logging.Field{Key: "bytes", Value: written})
	return destPath, nil
}

// decorate applies the browser-shaped headers the site requires before it
// will answer the JSON endpoints.
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", c.baseURL+"/reports/daily-psp")
}

// escapeReportPath percent-encodes each path segment while keeping the
// slashes literal, matching what the download endpoint expects.
func escapeReportPath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
