// Package extract handles offline extraction of downloaded report PDFs.
package extract

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"gridops/nrldc-psp/cmd/root"
	"gridops/nrldc-psp/internal/dateutils"
	"gridops/nrldc-psp/internal/fileutils"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/pspparser"
	"gridops/nrldc-psp/internal/snapshot"
)

var (
	date      string
	outputDir string
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <report.pdf>",
	Short: "Extract tables from a local PSP report PDF",
	Long: `Extract tables 2(A) and 2(C) from an already-downloaded report PDF and
write the combined JSON artifact. No network access, no database writes;
useful for replaying archived reports or debugging a layout change.

Example:
  nrldc-psp extract downloads/report_1736928000/15.01.25_NR.pdf --date 2025-01-15`,
	Args: cobra.ExactArgs(1),
	Run:  extractFunc,
}

func init() {
	Cmd.Flags().StringVar(&date, "date", "", "Report date label (YYYY-MM-DD); defaults to today in IST")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the JSON artifact; defaults to the PDF's directory")
}

func extractFunc(cmd *cobra.Command, args []string) {
	pdfPath := args[0]
	if !fileutils.FileExists(pdfPath) {
		root.Log.Fatalf("Input file does not exist: %s", pdfPath)
	}

	target, err := root.ResolveDate(date)
	if err != nil {
		root.Log.Fatalf("Invalid --date: %v", err)
	}

	extraction, err := pspparser.Parse(pdfPath)
	if err != nil {
		root.Log.Fatalf("Extraction failed: %v", err)
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(pdfPath)
	}

	snap := snapshot.Build(dateutils.ToISODate(target), filepath.Base(pdfPath), *extraction, time.Now())
	path, err := snapshot.Write(dir, snap)
	if err != nil {
		root.Log.Fatalf("Failed to write artifact: %v", err)
	}

	root.Log.Info("Extraction complete",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(extraction.Tables)})
}
