// Package run implements the daily ingestion command.
package run

import (
	"github.com/spf13/cobra"

	"gridops/nrldc-psp/cmd/root"
	"gridops/nrldc-psp/internal/nrldc"
	"gridops/nrldc-psp/internal/pdfgrid"
	"gridops/nrldc-psp/internal/pipeline"
	"gridops/nrldc-psp/internal/store"
)

var (
	date      string
	force     bool
	keepFiles bool
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, parse, and persist the daily PSP report",
	Long: `Run the full ingestion once for a report date: check whether the date is
already stored, look the report up in the NRLDC document listing, download
the PDF, extract tables 2(A) and 2(C), upsert the rows, and write the
combined JSON artifact next to the download.

A date with no published report (weekends, holidays) is not an error.

Example:
  nrldc-psp run --date 2025-01-15 --force`,
	Run: runFunc,
}

func init() {
	Cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD); defaults to today in IST")
	Cmd.Flags().BoolVar(&force, "force", false, "Re-ingest even when rows for the date already exist")
	Cmd.Flags().BoolVar(&keepFiles, "keep-files", true, "Retain the downloaded report directory")
}

func runFunc(cmd *cobra.Command, args []string) {
	target, err := root.ResolveDate(date)
	if err != nil {
		root.Log.Fatalf("Invalid --date: %v", err)
	}

	st, err := store.New(root.Cfg.DatabasePath)
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close store")
		}
	}()

	keep := root.Cfg.KeepFiles
	if cmd.Flags().Changed("keep-files") {
		keep = keepFiles
	}

	runner := &pipeline.Runner{
		Source:    nrldc.NewClient(root.Cfg.BaseURL, root.Cfg.HTTPTimeout),
		Extractor: pdfgrid.NewPlumberExtractor(),
		Store:     st,
		OutputDir: root.Cfg.OutputDir,
		KeepFiles: keep,
	}

	if err := runner.RunOnce(cmd.Context(), target, force); err != nil {
		root.Log.Fatalf("Run failed: %v", err)
	}
}
