package models

import (
	"github.com/shopspring/decimal"
)

// Table2ARow is one state's entry in table 2(A) "State's Load Details" of the
// daily PSP report. Generation figures are in MU; nil means the source cell
// was empty or unparseable.
type Table2ARow struct {
	ReportDate           string           `csv:"report_date" json:"report_date"`
	State                string           `csv:"state" json:"state"`
	Thermal              *decimal.Decimal `csv:"thermal" json:"thermal"`
	Hydro                *decimal.Decimal `csv:"hydro" json:"hydro"`
	GasNapthaDiesel      *decimal.Decimal `csv:"gas_naptha_diesel" json:"gas_naptha_diesel"`
	Solar                *decimal.Decimal `csv:"solar" json:"solar"`
	Wind                 *decimal.Decimal `csv:"wind" json:"wind"`
	OtherBiomassCoGenEtc *decimal.Decimal `csv:"other_biomass_co_gen_etc" json:"other_biomass_co_gen_etc"`
	Total                *decimal.Decimal `csv:"total" json:"total"`
	DrawalSch            *decimal.Decimal `csv:"drawal_sch" json:"drawal_sch"`
	ActDrawal            *decimal.Decimal `csv:"act_drawal" json:"act_drawal"`
	UI                   *decimal.Decimal `csv:"ui" json:"ui"`
	Requirement          *decimal.Decimal `csv:"requirement" json:"requirement"`
	Shortage             *decimal.Decimal `csv:"shortage" json:"shortage"`
	Consumption          *decimal.Decimal `csv:"consumption" json:"consumption"`
}

// Table2CRow is one state's entry in table 2(C) "State's Demand Met in MWs".
// Time fields are HH:MM strings as printed in the report.
type Table2CRow struct {
	ReportDate                   string           `csv:"report_date" json:"report_date"`
	State                        string           `csv:"state" json:"state"`
	MaxDemandMetOfTheDay         *decimal.Decimal `csv:"max_demand_met_of_the_day" json:"max_demand_met_of_the_day"`
	TimeMaxDemandMet             *string          `csv:"time_max_demand_met" json:"time_max_demand_met"`
	ShortageDuringMaxDemand      *decimal.Decimal `csv:"shortage_during_max_demand" json:"shortage_during_max_demand"`
	RequirementAtMaxDemand       *decimal.Decimal `csv:"requirement_at_max_demand" json:"requirement_at_max_demand"`
	MaxRequirementOfTheDay       *decimal.Decimal `csv:"max_requirement_of_the_day" json:"max_requirement_of_the_day"`
	TimeMaxRequirement           *string          `csv:"time_max_requirement" json:"time_max_requirement"`
	ShortageDuringMaxRequirement *decimal.Decimal `csv:"shortage_during_max_requirement" json:"shortage_during_max_requirement"`
	DemandMetAtMaxRequirement    *decimal.Decimal `csv:"demand_met_at_max_requirement" json:"demand_met_at_max_requirement"`
	MinDemandMet                 *decimal.Decimal `csv:"min_demand_met" json:"min_demand_met"`
	TimeMinDemandMet             *string          `csv:"time_min_demand_met" json:"time_min_demand_met"`
	AceMax                       *decimal.Decimal `csv:"ace_max" json:"ace_max"`
	TimeAceMax                   *string          `csv:"time_ace_max" json:"time_ace_max"`
	AceMin                       *decimal.Decimal `csv:"ace_min" json:"ace_min"`
	TimeAceMin                   *string          `csv:"time_ace_min" json:"time_ace_min"`
}

// Table2ARowFromRecord lifts a normalized record into the typed 2(A) row.
// An absent state comes through as the empty string; the store skips such
// rows since they cannot be keyed.
func Table2ARowFromRecord(reportDate string, rec Record) Table2ARow {
	row := Table2ARow{
		ReportDate:           reportDate,
		Thermal:              rec.DecimalField("thermal"),
		Hydro:                rec.DecimalField("hydro"),
		GasNapthaDiesel:      rec.DecimalField("gas_naptha_diesel"),
		Solar:                rec.DecimalField("solar"),
		Wind:                 rec.DecimalField("wind"),
		OtherBiomassCoGenEtc: rec.DecimalField("other_biomass_co_gen_etc"),
		Total:                rec.DecimalField("total"),
		DrawalSch:            rec.DecimalField("drawal_sch"),
		ActDrawal:            rec.DecimalField("act_drawal"),
		UI:                   rec.DecimalField("ui"),
		Requirement:          rec.DecimalField("requirement"),
		Shortage:             rec.DecimalField("shortage"),
		Consumption:          rec.DecimalField("consumption"),
	}
	if s := rec.TextField("state"); s != nil {
		row.State = *s
	}
	return row
}

// Table2CRowFromRecord lifts a normalized record into the typed 2(C) row.
func Table2CRowFromRecord(reportDate string, rec Record) Table2CRow {
	row := Table2CRow{
		ReportDate:                   reportDate,
		MaxDemandMetOfTheDay:         rec.DecimalField("max_demand_met_of_the_day"),
		TimeMaxDemandMet:             rec.TextField("time_max_demand_met"),
		ShortageDuringMaxDemand:      rec.DecimalField("shortage_during_max_demand"),
		RequirementAtMaxDemand:       rec.DecimalField("requirement_at_max_demand"),
		MaxRequirementOfTheDay:       rec.DecimalField("max_requirement_of_the_day"),
		TimeMaxRequirement:           rec.TextField("time_max_requirement"),
		ShortageDuringMaxRequirement: rec.DecimalField("shortage_during_max_requirement"),
		DemandMetAtMaxRequirement:    rec.DecimalField("demand_met_at_max_requirement"),
		MinDemandMet:                 rec.DecimalField("min_demand_met"),
		TimeMinDemandMet:             rec.TextField("time_min_demand_met"),
		AceMax:                       rec.DecimalField("ace_max"),
		TimeAceMax:                   rec.TextField("time_ace_max"),
		AceMin:                       rec.DecimalField("ace_min"),
		TimeAceMin:                   rec.TextField("time_ace_min"),
	}
	if s := rec.TextField("state"); s != nil {
		row.State = *s
	}
	return row
}
