// Package root contains the root command for the application
package root

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"gridops/nrldc-psp/internal/common"
	"gridops/nrldc-psp/internal/config"
	"gridops/nrldc-psp/internal/dateutils"
	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/nrldc"
	"gridops/nrldc-psp/internal/pipeline"
	"gridops/nrldc-psp/internal/pspparser"
	"gridops/nrldc-psp/internal/snapshot"
	"gridops/nrldc-psp/internal/store"
)

// SharedFlags holds the persistent flags common to all commands.
type SharedFlags struct {
	LogLevel  string
	Database  string
	OutputDir string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, populated before any
	// subcommand runs.
	Cfg *config.Config

	// Flags holds the persistent flag values.
	Flags = SharedFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "nrldc-psp",
		Short: "Fetch and persist the NRLDC daily Power Supply Position report.",
		Long: `nrldc-psp downloads the daily PSP report PDF published by the Northern
Regional Load Despatch Centre, extracts the state-level tables, and persists
them into SQLite alongside a combined JSON artifact.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}

			// Flags override config file and environment settings.
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = Flags.LogLevel
			}
			if cmd.Flags().Changed("db") {
				cfg.DatabasePath = Flags.Database
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = Flags.OutputDir
			}
			Cfg = cfg

			Log = config.ConfigureLogging(cfg)

			// Propagate the configured logger into the worker packages.
			pspparser.SetLogger(Log)
			nrldc.SetLogger(Log)
			store.SetLogger(Log)
			snapshot.SetLogger(Log)
			pipeline.SetLogger(Log)
			common.SetLogger(Log)

			// The delimiter may come from a freshly loaded .env file.
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.Database, "db", "", "SQLite database path")
	Cmd.PersistentFlags().StringVar(&Flags.OutputDir, "output-dir", "", "Directory for downloaded reports")
}

// ResolveDate parses a --date flag value, defaulting to today in IST when
// the flag was left empty.
func ResolveDate(value string) (time.Time, error) {
	if value == "" {
		return dateutils.TodayIST(), nil
	}
	return dateutils.ParseReportDate(value)
}
