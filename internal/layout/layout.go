// Package layout is the registry of sub-table definitions for the daily PSP
// report: the regex markers that bound each sub-table inside the flattened
// grid, the expected header columns, and the mapping from printed headers to
// persisted field names.
package layout

// TableID identifies a sub-table of the report.
type TableID int

const (
	// Table2A is section 2(A), "State's Load Details" (energy, MU).
	Table2A TableID = iota
	// Table2C is section 2(C), "State's Demand Met in MWs".
	Table2C
)

// String returns the section label as printed in the report.
func (id TableID) String() string {
	switch id {
	case Table2A:
		return "2A"
	case Table2C:
		return "2C"
	default:
		return "unknown"
	}
}

// FieldKind tells the normalizer how to coerce cells of a field.
type FieldKind int

const (
	// FieldNumeric cells are parsed as decimal numbers.
	FieldNumeric FieldKind = iota
	// FieldText cells are kept as trimmed strings (state names, HH:MM times).
	FieldText
)

// Spec describes one sub-table: where it sits in the flattened grid and how
// its columns map to fields.
type Spec struct {
	ID          TableID
	Name        string // section label, e.g. "2A"
	Key         string // artifact key, e.g. "table_2A"
	StartMarker string // regex; first row with a matching cell opens the span
	EndMarker   string // regex; first later row with a matching cell closes it
	HeaderRows  int
	Columns     []string          // expected header names, in print order
	Renames     map[string]string // printed header -> persisted field name
	Kinds       map[string]FieldKind
}

// FieldFor maps a printed column name to its persisted field name.
func (s Spec) FieldFor(column string) (string, bool) {
	field, ok := s.Renames[column]
	return field, ok
}

// KindOf returns the coercion kind for a persisted field name. Unknown
// fields default to text.
func (s Spec) KindOf(field string) FieldKind {
	if kind, ok := s.Kinds[field]; ok {
		return kind
	}
	return FieldText
}

// All returns the sub-table specs in report order.
func All() []Spec {
	return []Spec{table2A(), table2C()}
}

// Get returns the spec for a table ID.
func Get(id TableID) (Spec, bool) {
	for _, s := range All() {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}

func table2A() Spec {
	return Spec{
		ID:   Table2A,
		Name: "2A",
		Key:  "table_2A",
		// "Deails" is the typo printed in the report heading.
		StartMarker: `.*2\s*\(A\)\s*State's\s*Load\s*Deails.*`,
		EndMarker:   `2\s*\(B\)\s*State\s*Demand\s*Met\s*\(Peak\s*and\s*off-Peak\s*Hrs\)`,
		HeaderRows:  2,
		Columns: []string{
			"State",
			"Thermal",
			"Hydro",
			"Gas/Naptha/Diesel",
			"Solar",
			"Wind",
			"Others(Biomass/Co-gen etc.)",
			"Total",
			"Drawal Sch",
			"Act Drawal",
			"UI",
			"Requirement",
			"Shortage",
			"Consumption (Net MU)",
		},
		Renames: map[string]string{
			"State":                       "state",
			"Thermal":                     "thermal",
			"Hydro":                       "hydro",
			"Gas/Naptha/Diesel":           "gas_naptha_diesel",
			"Solar":                       "solar",
			"Wind":                        "wind",
			"Others(Biomass/Co-gen etc.)": "other_biomass_co_gen_etc",
			"Total":                       "total",
			"Drawal Sch":                  "drawal_sch",
			"Act Drawal":                  "act_drawal",
			"UI":                          "ui",
			"Requirement":                 "requirement",
			"Shortage":                    "shortage",
			"Consumption (Net MU)":        "consumption",
		},
		Kinds: map[string]FieldKind{
			"state":                    FieldText,
			"thermal":                  FieldNumeric,
			"hydro":                    FieldNumeric,
			"gas_naptha_diesel":        FieldNumeric,
			"solar":                    FieldNumeric,
			"wind":                     FieldNumeric,
			"other_biomass_co_gen_etc": FieldNumeric,
			"total":                    FieldNumeric,
			"drawal_sch":               FieldNumeric,
			"act_drawal":               FieldNumeric,
			"ui":                       FieldNumeric,
			"requirement":              FieldNumeric,
			"shortage":                 FieldNumeric,
			"consumption":              FieldNumeric,
		},
	}
}

func table2C() Spec {
	return Spec{
		ID:          Table2C,
		Name:        "2C",
		Key:         "table_2C",
		StartMarker: `2\s*\(C\)\s*State's\s*Demand\s*Met\s*in\s*MWs.*`,
		EndMarker:   `3\s*\(A\)\s*StateEntities\s*Generation:`,
		HeaderRows:  2,
		Columns: []string{
			"State",
			"Maximum Demand Met of the day",
			"Time",
			"Shortage during maximum demand",
			"Requirement at maximum demand",
			"Maximum requirement of the day",
			"Time.1",
			"Shortage during maximum requirement",
			"Demand Met at maximum Requirement",
			"Min Demand Met",
			"Time.2",
			"ACE_MAX",
			"ACE_MIN",
			"Time.3",
			"Time.4",
		},
		// The lattice extraction shifts the ACE block one cell left, so the
		// printed "ACE_MIN" column actually holds the max-ACE timestamp,
		// "Time.3" the min ACE value and "Time.4" its timestamp.
		Renames: map[string]string{
			"State":                               "state",
			"Maximum Demand Met of the day":       "max_demand_met_of_the_day",
			"Time":                                "time_max_demand_met",
			"Shortage during maximum demand":      "shortage_during_max_demand",
			"Requirement at maximum demand":       "requirement_at_max_demand",
			"Maximum requirement of the day":      "max_requirement_of_the_day",
			"Time.1":                              "time_max_requirement",
			"Shortage during maximum requirement": "shortage_during_max_requirement",
			"Demand Met at maximum Requirement":   "demand_met_at_max_requirement",
			"Min Demand Met":                      "min_demand_met",
			"Time.2":                              "time_min_demand_met",
			"ACE_MAX":                             "ace_max",
			"ACE_MIN":                             "time_ace_max",
			"Time.3":                              "ace_min",
			"Time.4":                              "time_ace_min",
		},
		Kinds: map[string]FieldKind{
			"state":                           FieldText,
			"max_demand_met_of_the_day":       FieldNumeric,
			"time_max_demand_met":             FieldText,
			"shortage_during_max_demand":      FieldNumeric,
			"requirement_at_max_demand":       FieldNumeric,
			"max_requirement_of_the_day":      FieldNumeric,
			"time_max_requirement":            FieldText,
			"shortage_during_max_requirement": FieldNumeric,
			"demand_met_at_max_requirement":   FieldNumeric,
			"min_demand_met":                  FieldNumeric,
			"time_min_demand_met":             FieldText,
			"ace_max":                         FieldNumeric,
			"time_ace_max":                    FieldText,
			"ace_min":                         FieldNumeric,
			"time_ace_min":                    FieldText,
		},
	}
}
