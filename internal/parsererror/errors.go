// Package parsererror defines the structured error types shared by the
// acquisition, extraction and persistence layers.
package parsererror

import "fmt"

// AcquisitionError represents a failure to obtain report content, either
// over HTTP or while opening/reading a downloaded PDF. Acquisition failures
// are fatal for the run.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition failed for %s: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// NoTablesError indicates the PDF extractor produced zero tables across the
// whole document. The report cannot be processed.
type NoTablesError struct {
	Source string
}

func (e *NoTablesError) Error() string {
	return fmt.Sprintf("no tables extracted from %s", e.Source)
}

// FormatError represents a located sub-table that could not be interpreted.
type FormatError struct {
	Table  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("table %s: %s", e.Table, e.Reason)
}

// StoreError wraps a persistence failure with the operation that caused it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
