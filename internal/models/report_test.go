package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable2ARowFromRecord(t *testing.T) {
	rec := Record{
		"state":       TextValue("Punjab"),
		"thermal":     NumericValue(decimal.NewFromFloat(88.02)),
		"hydro":       NumericValue(decimal.NewFromFloat(29.51)),
		"solar":       AbsentValue(),
		"consumption": NumericValue(decimal.NewFromFloat(211.92)),
	}

	row := Table2ARowFromRecord("2025-04-01", rec)

	assert.Equal(t, "2025-04-01", row.ReportDate)
	assert.Equal(t, "Punjab", row.State)
	require.NotNil(t, row.Thermal)
	assert.Equal(t, "88.02", row.Thermal.String())
	require.NotNil(t, row.Hydro)
	assert.Equal(t, "29.51", row.Hydro.String())
	assert.Nil(t, row.Solar)
	assert.Nil(t, row.Wind)
	require.NotNil(t, row.Consumption)
	assert.Equal(t, "211.92", row.Consumption.String())
}

func TestTable2ARowFromRecordAbsentState(t *testing.T) {
	rec := Record{
		"thermal": NumericValue(decimal.NewFromInt(10)),
	}

	row := Table2ARowFromRecord("2025-04-01", rec)

	assert.Equal(t, "", row.State)
}

func TestTable2CRowFromRecord(t *testing.T) {
	rec := Record{
		"state":                     TextValue("Haryana"),
		"max_demand_met_of_the_day": NumericValue(decimal.NewFromFloat(6651.0)),
		"time_max_demand_met":       TextValue("23:30"),
		"ace_max":                   NumericValue(decimal.NewFromFloat(312.4)),
		"time_ace_max":              TextValue("10:15"),
		"ace_min":                   NumericValue(decimal.NewFromFloat(-271.9)),
		"time_ace_min":              TextValue("04:50"),
	}

	row := Table2CRowFromRecord("2025-04-01", rec)

	assert.Equal(t, "Haryana", row.State)
	require.NotNil(t, row.MaxDemandMetOfTheDay)
	assert.Equal(t, "6651", row.MaxDemandMetOfTheDay.String())
	require.NotNil(t, row.TimeMaxDemandMet)
	assert.Equal(t, "23:30", *row.TimeMaxDemandMet)
	require.NotNil(t, row.AceMax)
	assert.Equal(t, "312.4", row.AceMax.String())
	require.NotNil(t, row.AceMin)
	assert.Equal(t, "-271.9", row.AceMin.String())
	require.NotNil(t, row.TimeAceMin)
	assert.Equal(t, "04:50", *row.TimeAceMin)
	assert.Nil(t, row.MinDemandMet)
	assert.Nil(t, row.TimeMinDemandMet)
}
