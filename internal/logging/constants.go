package logging

// Standardized field names for structured logging.
// Using these constants keeps log output consistent across packages,
// making it easier to filter runs by report date, table or file.
const (
	FieldFile       = "file_path"
	FieldTable      = "table"
	FieldReportDate = "report_date"
	FieldState      = "state"
	FieldURL        = "url"
	FieldMarker     = "marker"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldRows       = "rows"
	FieldColumns    = "columns"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
