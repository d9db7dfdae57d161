package store

import (
	"context"
	"time"

	"gridops/nrldc-psp/internal/models"
)

// RecordStore is the persistence surface the pipeline depends on.
type RecordStore interface {
	UpsertTable2A(ctx context.Context, rows []models.Table2ARow) (UpsertResult, error)
	UpsertTable2C(ctx context.Context, rows []models.Table2CRow) (UpsertResult, error)
	HasReport(ctx context.Context, date time.Time) (bool, error)
	Close() error
}

// Compile-time interface checks.
var _ RecordStore = (*Store)(nil)
var _ RecordStore = (*MockStore)(nil)

// MockStore is an in-memory RecordStore for testing, with injectable errors
// for exercising failure paths.
type MockStore struct {
	Table2A map[string]models.Table2ARow
	Table2C map[string]models.Table2CRow

	// Error flags for testing error conditions
	UpsertTable2AError error
	UpsertTable2CError error
	HasReportError     error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		Table2A: make(map[string]models.Table2ARow),
		Table2C: make(map[string]models.Table2CRow),
	}
}

// UpsertTable2A stores rows keyed by (report_date, state) with the same
// skip/insert/update accounting as the real store.
func (m *MockStore) UpsertTable2A(_ context.Context, rows []models.Table2ARow) (UpsertResult, error) {
	if m.UpsertTable2AError != nil {
		return UpsertResult{}, m.UpsertTable2AError
	}
	var result UpsertResult
	for _, r := range rows {
		if r.State == "" {
			result.Skipped++
			continue
		}
		key := r.ReportDate + "|" + r.State
		if _, ok := m.Table2A[key]; ok {
			result.Updated++
		} else {
			result.Inserted++
		}
		m.Table2A[key] = r
	}
	return result, nil
}

// UpsertTable2C stores rows with the same semantics as UpsertTable2A.
func (m *MockStore) UpsertTable2C(_ context.Context, rows []models.Table2CRow) (UpsertResult, error) {
	if m.UpsertTable2CError != nil {
		return UpsertResult{}, m.UpsertTable2CError
	}
	var result UpsertResult
	for _, r := range rows {
		if r.State == "" {
			result.Skipped++
			continue
		}
		key := r.ReportDate + "|" + r.State
		if _, ok := m.Table2C[key]; ok {
			result.Updated++
		} else {
			result.Inserted++
		}
		m.Table2C[key] = r
	}
	return result, nil
}

// HasReport reports whether any stored row carries the given date.
func (m *MockStore) HasReport(_ context.Context, date time.Time) (bool, error) {
	if m.HasReportError != nil {
		return false, m.HasReportError
	}
	iso := date.Format("2006-01-02")
	for _, r := range m.Table2A {
		if r.ReportDate == iso {
			return true, nil
		}
	}
	for _, r := range m.Table2C {
		if r.ReportDate == iso {
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op.
func (m *MockStore) Close() error {
	return nil
}
