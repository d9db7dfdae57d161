// Package pipeline wires the acquisition, extraction, persistence, and
// snapshot steps into the single daily run used by the run and schedule
// commands. One report at a time; no concurrency.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridops/nrldc-psp/internal/dateutils"
	"gridops/nrldc-psp/internal/layout"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/models"
	"gridops/nrldc-psp/internal/nrldc"
	"gridops/nrldc-psp/internal/pdfgrid"
	"gridops/nrldc-psp/internal/pspparser"
	"gridops/nrldc-psp/internal/snapshot"
	"gridops/nrldc-psp/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ReportSource lists and fetches published reports.
type ReportSource interface {
	LatestReport(ctx context.Context, date time.Time) (*nrldc.Document, error)
	Download(ctx context.Context, doc *nrldc.Document, destDir string) (string, error)
}

var _ ReportSource = (*nrldc.Client)(nil)

// Runner executes the end-to-end ingestion for one report date.
type Runner struct {
	Source    ReportSource
	Extractor pdfgrid.Extractor
	Store     store.RecordStore
	OutputDir string
	KeepFiles bool

	// Now is the clock used for download directory names and snapshot
	// timestamps; defaults to time.Now.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// RunOnce ingests the report for date. Already-ingested dates are skipped
// unless force is set; a date with no published report is not an error.
func (r *Runner) RunOnce(ctx context.Context, date time.Time, force bool) error {
	iso := dateutils.ToISODate(date)

	if !force {
		has, err := r.Store.HasReport(ctx, date)
		if err != nil {
			return err
		}
		if has {
			log.Info("Report already ingested; skipping",
				logging.Field{Key: logging.FieldReportDate, Value: iso})
			return nil
		}
	}

	doc, err := r.Source.LatestReport(ctx, date)
	if err != nil {
		return err
	}
	if doc == nil {
		fields := []logging.Field{{Key: logging.FieldReportDate, Value: iso}}
		if dateutils.IsWeekend(date) {
			fields = append(fields, logging.Field{Key: logging.FieldReason, Value: "weekend"})
		}
		log.Info("No report published for date", fields...)
		return nil
	}

	runStart := r.now()
	destDir := filepath.Join(r.OutputDir, fmt.Sprintf("report_%d", runStart.Unix()))
	pdfPath, err := r.Source.Download(ctx, doc, destDir)
	if err != nil {
		return err
	}

	extraction, err := pspparser.ParseWithExtractor(pdfPath, r.Extractor)
	if err != nil {
		return err
	}
	for _, warning := range extraction.Warnings {
		log.Warn("Extraction warning",
			logging.Field{Key: logging.FieldReportDate, Value: iso},
			logging.Field{Key: logging.FieldReason, Value: warning})
	}

	if err := r.persist(ctx, iso, extraction); err != nil {
		return err
	}

	snap := snapshot.Build(iso, doc.FileName, *extraction, runStart)
	if _, err := snapshot.Write(destDir, snap); err != nil {
		return err
	}

	if !r.KeepFiles {
		if err := os.RemoveAll(destDir); err != nil {
			log.WithError(err).Warn("Failed to remove download directory",
				logging.Field{Key: logging.FieldFile, Value: destDir})
		}
	}

	log.Info("Report ingested",
		logging.Field{Key: logging.FieldReportDate, Value: iso},
		logging.Field{Key: logging.FieldFile, Value: doc.FileName})
	return nil
}

func (r *Runner) persist(ctx context.Context, iso string, extraction *pspparser.Extraction) error {
	for _, spec := range layout.All() {
		table, ok := extraction.Tables[spec.Key]
		if !ok {
			continue
		}

		switch spec.ID {
		case layout.Table2A:
			rows := make([]models.Table2ARow, 0, len(table.Records))
			for _, rec := range table.Records {
				rows = append(rows, models.Table2ARowFromRecord(iso, rec))
			}
			if _, err := r.Store.UpsertTable2A(ctx, rows); err != nil {
				return err
			}
		case layout.Table2C:
			rows := make([]models.Table2CRow, 0, len(table.Records))
			for _, rec := range table.Records {
				rows = append(rows, models.Table2CRowFromRecord(iso, rec))
			}
			if _, err := r.Store.UpsertTable2C(ctx, rows); err != nil {
				return err
			}
		}
	}
	return nil
}
