package sqlerr

import "fmt"

// Code is a friendly enum over the SQLSTATE classes this core cares about.
type Code uint8

const (
	// Other covers every SQLSTATE we do not map explicitly.
	Other Code = iota

	// UniqueViolation is SQLSTATE 23505.
	UniqueViolation

	// ForeignKeyViolation is SQLSTATE 23503.
	ForeignKeyViolation

	// NotNullViolation is SQLSTATE 23502.
	NotNullViolation

	// CheckViolation is SQLSTATE 23514.
	CheckViolation
)

// Severity mirrors the severity field Postgres reports alongside an error.
type Severity uint8

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// MapCode maps a raw SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the driver's severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// Error is a normalized view over a raw Postgres error.
//
// It keeps the metadata needed to build useful application errors
// (table, column, constraint) plus the original SQLSTATE for logging.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string // the database's own message
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	// driverErr is the original driver error, kept for Unwrap and debugging.
	driverErr error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sqlstate %s: %s", e.DatabaseCode, e.Message)
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
