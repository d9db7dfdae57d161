package root_test

import (
	"testing"

	"gridops/nrldc-psp/cmd/root"
	"gridops/nrldc-psp/internal/dateutils"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "nrldc-psp", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Power Supply Position")
	assert.Contains(t, root.Cmd.Long, "SQLite")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Run(t *testing.T) {
	cmd := &cobra.Command{}

	assert.NotPanics(t, func() {
		root.Cmd.Run(cmd, []string{})
	})
}

func TestInit_FlagBinding(t *testing.T) {
	// Init may already have run via another test; registering the same flag
	// twice panics, so only call it when the flags are missing.
	if root.Cmd.PersistentFlags().Lookup("log-level") == nil {
		root.Init()
	}

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("db"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("output-dir"))
}

func TestResolveDate(t *testing.T) {
	got, err := root.ResolveDate("2025-01-15")
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-15", dateutils.ToISODate(got))

	// The DD-MM-YYYY layout the NRLDC site itself uses is accepted too.
	got, err = root.ResolveDate("15-01-2025")
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-15", dateutils.ToISODate(got))
}

func TestResolveDateDefaultsToTodayIST(t *testing.T) {
	got, err := root.ResolveDate("")
	assert.NoError(t, err)
	assert.Equal(t, dateutils.ToISODate(dateutils.TodayIST()), dateutils.ToISODate(got))
}

func TestResolveDateRejectsGarbage(t *testing.T) {
	_, err := root.ResolveDate("not-a-date")
	assert.Error(t, err)
}

func TestSharedFlags_Access(t *testing.T) {
	original := root.Flags
	defer func() { root.Flags = original }()

	root.Flags.Database = "alt.db"
	root.Flags.OutputDir = "alt-downloads"

	assert.Equal(t, "alt.db", root.Flags.Database)
	assert.Equal(t, "alt-downloads", root.Flags.OutputDir)
}

func TestGlobalVariables_Initialization(t *testing.T) {
	assert.NotNil(t, root.Log)
	assert.NotNil(t, root.Cmd)
}
