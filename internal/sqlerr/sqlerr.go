// Package sqlerr translates PostgreSQL driver errors into
// application errors.
//
// It reads the SQLSTATE and constraint metadata carried by
// *pgconn.PgError and turns them into *errs.HTTPError values with
// stable codes (e.g. CATEGORY_ALREADY_EXISTS) and readable messages.
package sqlerr

import "fmt"

// Code is a normalized class of database error.
type Code string

const (
	Other               Code = "other"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
)

// Severity mirrors the severity levels PostgreSQL reports.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a driver-independent view of a PostgreSQL error.
type Error struct {
	Code     Code
	Severity Severity

	// DatabaseCode is the raw SQLSTATE, e.g. "23503".
	DatabaseCode string
	Message      string

	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE to a Code.
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the severity string reported by the server.
// Unknown values fall back to SeverityError.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
