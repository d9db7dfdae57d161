// Package store persists parsed report rows into SQLite, one table per
// report sub-table, keyed by (report_date, state) so that re-ingesting the
// same report updates rows in place.
package store

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"gridops/nrldc-psp/internal/logging"
	"gridops/nrldc-psp/internal/models"
	"gridops/nrldc-psp/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

//go:embed migrations/*.sql
var migrations embed.FS

// UpsertResult reports what an upsert batch did.
type UpsertResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Store is a SQLite-backed record store for the two PSP sub-tables.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies pending
// migrations. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &parsererror.StoreError{Op: "open", Err: err}
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, &parsererror.StoreError{Op: "migrate", Err: err}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

const upsertTable2ASQL = `
INSERT INTO psp_table_2a (
    report_date, state, thermal, hydro, gas_naptha_diesel, solar, wind,
    other_biomass_co_gen_etc, total, drawal_sch, act_drawal, ui,
    requirement, shortage, consumption
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(report_date, state) DO UPDATE SET
    thermal = excluded.thermal,
    hydro = excluded.hydro,
    gas_naptha_diesel = excluded.gas_naptha_diesel,
    solar = excluded.solar,
    wind = excluded.wind,
    other_biomass_co_gen_etc = excluded.other_biomass_co_gen_etc,
    total = excluded.total,
    drawal_sch = excluded.drawal_sch,
    act_drawal = excluded.act_drawal,
    ui = excluded.ui,
    requirement = excluded.requirement,
    shortage = excluded.shortage,
    consumption = excluded.consumption`

const upsertTable2CSQL = `
INSERT INTO psp_table_2c (
    report_date, state, max_demand_met_of_the_day, time_max_demand_met,
    shortage_during_max_demand, requirement_at_max_demand,
    max_requirement_of_the_day, time_max_requirement,
    shortage_during_max_requirement, demand_met_at_max_requirement,
    min_demand_met, time_min_demand_met, ace_max, time_ace_max,
    ace_min, time_ace_min
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(report_date, state) DO UPDATE SET
    max_demand_met_of_the_day = excluded.max_demand_met_of_the_day,
    time_max_demand_met = excluded.time_max_demand_met,
    shortage_during_max_demand = excluded.shortage_during_max_demand,
    requirement_at_max_demand = excluded.requirement_at_max_demand,
    max_requirement_of_the_day = excluded.max_requirement_of_the_day,
    time_max_requirement = excluded.time_max_requirement,
    shortage_during_max_requirement = excluded.shortage_during_max_requirement,
    demand_met_at_max_requirement = excluded.demand_met_at_max_requirement,
    min_demand_met = excluded.min_demand_met,
    time_min_demand_met = excluded.time_min_demand_met,
    ace_max = excluded.ace_max,
    time_ace_max = excluded.time_ace_max,
    ace_min = excluded.ace_min,
    time_ace_min = excluded.time_ace_min`

// UpsertTable2A writes 2(A) rows inside one transaction. Rows without a
// state are skipped since they cannot be keyed; a single row failure is
// logged and the rest of the batch continues.
func (s *Store) UpsertTable2A(ctx context.Context, rows []models.Table2ARow) (UpsertResult, error) {
	return s.upsert(ctx, "psp_table_2a", len(rows), func(i int) (string, []any) {
		r := rows[i]
		return r.State, []any{
			r.ReportDate, r.State,
			nullDecimal(r.Thermal), nullDecimal(r.Hydro), nullDecimal(r.GasNapthaDiesel),
			nullDecimal(r.Solar), nullDecimal(r.Wind), nullDecimal(r.OtherBiomassCoGenEtc),
			nullDecimal(r.Total), nullDecimal(r.DrawalSch), nullDecimal(r.ActDrawal),
			nullDecimal(r.UI), nullDecimal(r.Requirement), nullDecimal(r.Shortage),
			nullDecimal(r.Consumption),
		}
	}, func(i int) string { return rows[i].ReportDate }, upsertTable2ASQL)
}

// UpsertTable2C writes 2(C) rows with the same semantics as UpsertTable2A.
func (s *Store) UpsertTable2C(ctx context.Context, rows []models.Table2CRow) (UpsertResult, error) {
	return s.upsert(ctx, "psp_table_2c", len(rows), func(i int) (string, []any) {
		r := rows[i]
		return r.State, []any{
			r.ReportDate, r.State,
			nullDecimal(r.MaxDemandMetOfTheDay), nullText(r.TimeMaxDemandMet),
			nullDecimal(r.ShortageDuringMaxDemand), nullDecimal(r.RequirementAtMaxDemand),
			nullDecimal(r.MaxRequirementOfTheDay), nullText(r.TimeMaxRequirement),
			nullDecimal(r.ShortageDuringMaxRequirement), nullDecimal(r.DemandMetAtMaxRequirement),
			nullDecimal(r.MinDemandMet), nullText(r.TimeMinDemandMet),
			nullDecimal(r.AceMax), nullText(r.TimeAceMax),
			nullDecimal(r.AceMin), nullText(r.TimeAceMin),
		}
	}, func(i int) string { return rows[i].ReportDate }, upsertTable2CSQL)
}

func (s *Store) upsert(ctx context.Context, table string, n int,
	bind func(i int) (string, []any),
	dateOf func(i int) string, query string) (UpsertResult, error) {

	var result UpsertResult
	if n == 0 {
		return result, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, &parsererror.StoreError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < n; i++ {
		state, args := bind(i)
		if state == "" {
			log.Warn("Skipping row without state",
				logging.Field{Key: logging.FieldTable, Value: table},
				logging.Field{Key: logging.FieldReportDate, Value: dateOf(i)})
			result.Skipped++
			continue
		}

		exists, err := rowExists(ctx, tx, table, dateOf(i), state)
		if err != nil {
			return result, &parsererror.StoreError{Op: "upsert " + table, Err: err}
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.WithError(err).Error("Failed to upsert row",
				logging.Field{Key: logging.FieldTable, Value: table},
				logging.Field{Key: logging.FieldState, Value: state})
			result.Skipped++
			continue
		}

		if exists {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return result, &parsererror.StoreError{Op: "commit " + table, Err: err}
	}

	log.Info("Rows persisted",
		logging.Field{Key: logging.FieldTable, Value: table},
		logging.Field{Key: "inserted", Value: result.Inserted},
		logging.Field{Key: "updated", Value: result.Updated},
		logging.Field{Key: "skipped", Value: result.Skipped})
	return result, nil
}

func rowExists(ctx context.Context, tx *sql.Tx, table, reportDate, state string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM "+table+" WHERE report_date = ? AND state = ?)",
		reportDate, state,
	).Scan(&exists)
	return exists, err
}

// HasReport reports whether either sub-table already holds rows for the
// given report date.
func (s *Store) HasReport(ctx context.Context, date time.Time) (bool, error) {
	iso := date.Format("2006-01-02")
	var has bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM psp_table_2a WHERE report_date = ?)
		     OR EXISTS(SELECT 1 FROM psp_table_2c WHERE report_date = ?)`,
		iso, iso,
	).Scan(&has)
	if err != nil {
		return false, &parsererror.StoreError{Op: "has-report", Err: err}
	}
	return has, nil
}

// CountByDate returns the number of persisted rows per sub-table for a date.
func (s *Store) CountByDate(ctx context.Context, date time.Time) (table2A, table2C int, err error) {
	iso := date.Format("2006-01-02")
	if err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM psp_table_2a WHERE report_date = ?", iso).Scan(&table2A); err != nil {
		return 0, 0, &parsererror.StoreError{Op: "count", Err: err}
	}
	if err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM psp_table_2c WHERE report_date = ?", iso).Scan(&table2C); err != nil {
		return 0, 0, &parsererror.StoreError{Op: "count", Err: err}
	}
	return table2A, table2C, nil
}

// FetchTable2A returns persisted 2(A) rows with report_date in [from, to],
// ordered by date then state.
func (s *Store) FetchTable2A(ctx context.Context, from, to time.Time) ([]models.Table2ARow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT report_date, state, thermal, hydro, gas_naptha_diesel, solar, wind,
		       other_biomass_co_gen_etc, total, drawal_sch, act_drawal, ui,
		       requirement, shortage, consumption
		FROM psp_table_2a
		WHERE report_date >= ? AND report_date <= ?
		ORDER BY report_date, state`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, &parsererror.StoreError{Op: "fetch psp_table_2a", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []models.Table2ARow
	for rows.Next() {
		var r models.Table2ARow
		var nums [13]sql.NullFloat64
		if err := rows.Scan(&r.ReportDate, &r.State,
			&nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &nums[5], &nums[6],
			&nums[7], &nums[8], &nums[9], &nums[10], &nums[11], &nums[12]); err != nil {
			return nil, &parsererror.StoreError{Op: "scan psp_table_2a", Err: err}
		}
		r.Thermal = decimalPtr(nums[0])
		r.Hydro = decimalPtr(nums[1])
		r.GasNapthaDiesel = decimalPtr(nums[2])
		r.Solar = decimalPtr(nums[3])
		r.Wind = decimalPtr(nums[4])
		r.OtherBiomassCoGenEtc = decimalPtr(nums[5])
		r.Total = decimalPtr(nums[6])
		r.DrawalSch = decimalPtr(nums[7])
		r.ActDrawal = decimalPtr(nums[8])
		r.UI = decimalPtr(nums[9])
		r.Requirement = decimalPtr(nums[10])
		r.Shortage = decimalPtr(nums[11])
		r.Consumption = decimalPtr(nums[12])
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchTable2C returns persisted 2(C) rows with report_date in [from, to],
// ordered by date then state.
func (s *Store) FetchTable2C(ctx context.Context, from, to time.Time) ([]models.Table2CRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT report_date, state, max_demand_met_of_the_day, time_max_demand_met,
		       shortage_during_max_demand, requirement_at_max_demand,
		       max_requirement_of_the_day, time_max_requirement,
		       shortage_during_max_requirement, demand_met_at_max_requirement,
		       min_demand_met, time_min_demand_met, ace_max, time_ace_max,
		       ace_min, time_ace_min
		FROM psp_table_2c
		WHERE report_date >= ? AND report_date <= ?
		ORDER BY report_date, state`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, &parsererror.StoreError{Op: "fetch psp_table_2c", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []models.Table2CRow
	for rows.Next() {
		var r models.Table2CRow
		var nums [9]sql.NullFloat64
		var times [5]sql.NullString
		if err := rows.Scan(&r.ReportDate, &r.State,
			&nums[0], &times[0], &nums[1], &nums[2], &nums[3], &times[1],
			&nums[4], &nums[5], &nums[6], &times[2], &nums[7], &times[3],
			&nums[8], &times[4]); err != nil {
			return nil, &parsererror.StoreError{Op: "scan psp_table_2c", Err: err}
		}
		r.MaxDemandMetOfTheDay = decimalPtr(nums[0])
		r.TimeMaxDemandMet = textPtr(times[0])
		r.ShortageDuringMaxDemand = decimalPtr(nums[1])
		r.RequirementAtMaxDemand = decimalPtr(nums[2])
		r.MaxRequirementOfTheDay = decimalPtr(nums[3])
		r.TimeMaxRequirement = textPtr(times[1])
		r.ShortageDuringMaxRequirement = decimalPtr(nums[4])
		r.DemandMetAtMaxRequirement = decimalPtr(nums[5])
		r.MinDemandMet = decimalPtr(nums[6])
		r.TimeMinDemandMet = textPtr(times[2])
		r.AceMax = decimalPtr(nums[7])
		r.TimeAceMax = textPtr(times[3])
		r.AceMin = decimalPtr(nums[8])
		r.TimeAceMin = textPtr(times[4])
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func nullText(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func decimalPtr(n sql.NullFloat64) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := decimal.NewFromFloat(n.Float64)
	return &d
}

func textPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
