package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridops/nrldc-psp/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func dec(v string) *decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return &d
}

func str(v string) *string {
	return &v
}

var reportDay = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func TestNewCreatesSchemaOnDisk(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "psp.db")
	s, err := New(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	assert.FileExists(t, dbPath)

	has, err := s.HasReport(context.Background(), reportDay)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUpsertTable2AInsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := []models.Table2ARow{
		{ReportDate: "2025-01-15", State: "Punjab", Thermal: dec("88.02"), Total: dec("734.77")},
		{ReportDate: "2025-01-15", State: "Haryana", Thermal: dec("55.10")},
	}

	result, err := s.UpsertTable2A(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Skipped)

	// Same key again: second write wins, row count stays at one per state.
	rows[0].Thermal = dec("90.00")
	result, err = s.UpsertTable2A(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, result.Updated)

	fetched, err := s.FetchTable2A(ctx, reportDay, reportDay)
	require.NoError(t, err)
	require.Len(t, fetched, 2)

	// Ordered by state: Haryana before Punjab.
	assert.Equal(t, "Haryana", fetched[0].State)
	assert.Equal(t, "Punjab", fetched[1].State)
	require.NotNil(t, fetched[1].Thermal)
	assert.True(t, fetched[1].Thermal.Equal(decimal.RequireFromString("90")))
	require.NotNil(t, fetched[1].Total)
	assert.True(t, fetched[1].Total.Equal(decimal.RequireFromString("734.77")))
	assert.Nil(t, fetched[0].Hydro)
}

func TestUpsertSkipsRowsWithoutState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := []models.Table2ARow{
		{ReportDate: "2025-01-15", State: "", Thermal: dec("1")},
		{ReportDate: "2025-01-15", State: "Delhi", Thermal: dec("2")},
	}

	result, err := s.UpsertTable2A(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)

	fetched, err := s.FetchTable2A(ctx, reportDay, reportDay)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "Delhi", fetched[0].State)
}

func TestUpsertTable2CRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := []models.Table2CRow{
		{
			ReportDate:           "2025-01-15",
			State:                "Punjab",
			MaxDemandMetOfTheDay: dec("6651.89"),
			TimeMaxDemandMet:     str("19:45"),
			MinDemandMet:         dec("4120.5"),
			TimeMinDemandMet:     str("03:15"),
			AceMax:               dec("110.2"),
			TimeAceMax:           str("10:00"),
		},
	}

	result, err := s.UpsertTable2C(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	fetched, err := s.FetchTable2C(ctx, reportDay, reportDay)
	require.NoError(t, err)
	require.Len(t, fetched, 1)

	got := fetched[0]
	assert.Equal(t, "Punjab", got.State)
	require.NotNil(t, got.MaxDemandMetOfTheDay)
	assert.True(t, got.MaxDemandMetOfTheDay.Equal(decimal.RequireFromString("6651.89")))
	require.NotNil(t, got.TimeMaxDemandMet)
	assert.Equal(t, "19:45", *got.TimeMaxDemandMet)
	assert.Nil(t, got.AceMin)
	assert.Nil(t, got.TimeAceMin)
}

func TestHasReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	has, err := s.HasReport(ctx, reportDay)
	require.NoError(t, err)
	assert.False(t, has)

	// Rows in only one of the two tables still count.
	_, err = s.UpsertTable2C(ctx, []models.Table2CRow{
		{ReportDate: "2025-01-15", State: "Punjab", MaxDemandMetOfTheDay: dec("6651.89")},
	})
	require.NoError(t, err)

	has, err = s.HasReport(ctx, reportDay)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasReport(ctx, reportDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCountByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertTable2A(ctx, []models.Table2ARow{
		{ReportDate: "2025-01-15", State: "Punjab"},
		{ReportDate: "2025-01-15", State: "Haryana"},
		{ReportDate: "2025-01-16", State: "Punjab"},
	})
	require.NoError(t, err)
	_, err = s.UpsertTable2C(ctx, []models.Table2CRow{
		{ReportDate: "2025-01-15", State: "Punjab"},
	})
	require.NoError(t, err)

	n2a, n2c, err := s.CountByDate(ctx, reportDay)
	require.NoError(t, err)
	assert.Equal(t, 2, n2a)
	assert.Equal(t, 1, n2c)
}

func TestFetchRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertTable2A(ctx, []models.Table2ARow{
		{ReportDate: "2025-01-14", State: "Punjab"},
		{ReportDate: "2025-01-15", State: "Punjab"},
		{ReportDate: "2025-01-16", State: "Punjab"},
	})
	require.NoError(t, err)

	fetched, err := s.FetchTable2A(ctx,
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, "2025-01-14", fetched[0].ReportDate)
	assert.Equal(t, "2025-01-15", fetched[1].ReportDate)
}

func TestUpsertEmptyBatch(t *testing.T) {
	s := newTestStore(t)

	result, err := s.UpsertTable2A(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)
	assert.Zero(t, result.Updated)
	assert.Zero(t, result.Skipped)
}
