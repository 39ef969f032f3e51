package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/expense-tracker/internal/errs"
)

var (
	// users_email_key, categories_name_key
	uniqueKeyRegex = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	// expenses_category_id_fkey
	foreignKeyRegex = regexp.MustCompile(`^[a-z]+_([a-z_]+)_id_fkey$`)
)

// ErrCode reports the Code of err.
//
// Both *Error and a raw *pgconn.PgError anywhere in the chain are
// recognized; anything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// IsForeignKeyViolation reports whether err was caused by a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	return ErrCode(err) == ForeignKeyViolation
}

// IsUniqueViolation reports whether err was caused by a unique constraint.
func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}

// ReferencedEntity names the entity a foreign key violation points at,
// e.g. expenses_user_id_fkey -> user. It is "" for any other error.
func ReferencedEntity(err error) string {
	var sqlErr *Error
	if !errors.As(err, &sqlErr) {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return ""
		}
		sqlErr = ConvertPgError(pgErr)
	}

	if sqlErr.Code != ForeignKeyViolation {
		return ""
	}
	return entityFor(sqlErr)
}

// ConvertPgError converts a *pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. CATEGORY_ALREADY_EXISTS.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "record"
	}

	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// entityFor picks the entity an error talks about.
//
// For foreign keys that is the referenced entity (expenses_category_id_fkey
// -> category), otherwise the singular of the table name.
func entityFor(sqlErr *Error) string {
	if sqlErr.Code == ForeignKeyViolation {
		if column := sqlErr.ColumnName; strings.HasSuffix(column, "_id") {
			return strings.TrimSuffix(column, "_id")
		}
		if m := foreignKeyRegex.FindStringSubmatch(sqlErr.ConstraintName); len(m) > 1 {
			return m[1]
		}
	}

	return singular(sqlErr.TableName)
}

// singular turns a table name into an entity name: categories -> category,
// expenses -> expense, users -> user.
func singular(table string) string {
	switch {
	case table == "":
		return ""
	case strings.HasSuffix(table, "ies"):
		return strings.TrimSuffix(table, "ies") + "y"
	case strings.HasSuffix(table, "s") && len(table) > 1:
		return strings.TrimSuffix(table, "s")
	default:
		return table
	}
}

func formatUserFriendlyMessage(sqlErr *Error, entity string) string {
	entityName := humanizeText(entity)
	if entityName == "" {
		entityName = "record"
	}

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(entityName))

	case UniqueViolation:
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", strings.ToLower(entityName), strings.ToLower(humanizeText(column)))
		}
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName))

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// humanizeText converts snake_case into Title Case: "category_id" -> "Category Id".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique
// constraint name, either unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyRegex.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged.
//   - *pgconn.PgError becomes a 400 with a generated code, or a 500 for
//     anything that is not a constraint violation.
//   - pgx.ErrNoRows / sql.ErrNoRows becomes a 404.
//   - everything else is a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		entity := entityFor(sqlErr)

		errorCode := generateErrorCode(entity, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr, entity)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case UniqueViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		// Repositories wrap ErrNoRows as "table:<name>: ..." so the entity
		// can be named in the message.
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entity := singular(table)
			code := generateErrorCode(entity, Other)
			code = strings.TrimSuffix(code, "_ERROR") + "_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", humanizeText(entity)), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
