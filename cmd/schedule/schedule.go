// Package schedule runs the daily ingestion on a cron schedule.
package schedule

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"gridops/nrldc-psp/cmd/root"
	"gridops/nrldc-psp/internal/dateutils"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/nrldc"
	"gridops/nrldc-psp/internal/pdfgrid"
	"gridops/nrldc-psp/internal/pipeline"
	"gridops/nrldc-psp/internal/store"
)

// runTimeout bounds one scheduled ingestion (download plus extraction).
const runTimeout = 10 * time.Minute

var cronSpec string

// Cmd represents the schedule command
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily ingestion on a cron schedule",
	Long: `Stay running and ingest the report for the current IST date whenever the
cron expression fires (07:30 IST by default, after the report is usually
published). Already-ingested days are skipped, so an aggressive schedule
or a restart never duplicates rows. Stop with SIGINT or SIGTERM.

Example:
  nrldc-psp schedule --cron "30 7,12 * * *"`,
	Run: scheduleFunc,
}

func init() {
	Cmd.Flags().StringVar(&cronSpec, "cron", "", "Cron expression evaluated in IST; defaults to the configured cron_spec")
}

func scheduleFunc(cmd *cobra.Command, args []string) {
	spec := root.Cfg.CronSpec
	if cronSpec != "" {
		spec = cronSpec
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

	runner := &pipeline.Runner{
		Source:    nrldc.NewClient(root.Cfg.BaseURL, root.Cfg.HTTPTimeout),
		Extractor: pdfgrid.NewPlumberExtractor(),
		Store:     st,
		OutputDir: root.Cfg.OutputDir,
		KeepFiles: root.Cfg.KeepFiles,
	}

	c := cron.New(cron.WithLocation(dateutils.IST))
	if _, err := c.AddFunc(spec, func() { ingestToday(runner) }); err != nil {
		root.Log.Fatalf("Invalid cron expression %q: %v", spec, err)
	}

	c.Start()
	root.Log.Info("Scheduler started",
		logging.Field{Key: "cron", Value: spec})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	root.Log.Info("Shutting down scheduler")
	<-c.Stop().Done()
}

func ingestToday(runner *pipeline.Runner) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	target := dateutils.TodayIST()
	if err := runner.RunOnce(ctx, target, false); err != nil {
		root.Log.WithError(err).Error("Scheduled run failed",
			logging.Field{Key: logging.FieldReportDate, Value: dateutils.ToISODate(target)})
	}
}
