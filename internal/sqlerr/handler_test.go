package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/expense-tracker/internal/errs"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("something-else"))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "category", singular("categories"))
	assert.Equal(t, "expense", singular("expenses"))
	assert.Equal(t, "user", singular("users"))
	assert.Equal(t, "", singular(""))
}

func TestErrCode(t *testing.T) {
	raw := &pgconn.PgError{Code: "23503"}

	assert.Equal(t, ForeignKeyViolation, ErrCode(fmt.Errorf("delete: %w", raw)))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23505"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
	assert.True(t, IsForeignKeyViolation(raw))
	assert.False(t, IsUniqueViolation(raw))
}

func TestReferencedEntity(t *testing.T) {
	fk := func(constraint string) error {
		return &pgconn.PgError{Code: "23503", TableName: "expenses", ConstraintName: constraint}
	}

	assert.Equal(t, "user", ReferencedEntity(fk("expenses_user_id_fkey")))
	assert.Equal(t, "category", ReferencedEntity(fk("expenses_category_id_fkey")))
	assert.Equal(t, "category", ReferencedEntity(fmt.Errorf("create: %w", fk("expenses_category_id_fkey"))))
	assert.Equal(t, "user", ReferencedEntity(ConvertPgError(fk("expenses_user_id_fkey").(*pgconn.PgError))))

	assert.Empty(t, ReferencedEntity(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}))
	assert.Empty(t, ReferencedEntity(errors.New("boom")))
	assert.Empty(t, ReferencedEntity(nil))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name: "unique category name",
			err: &pgconn.PgError{
				Code:           "23505",
				TableName:      "categories",
				ConstraintName: "categories_name_key",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "CATEGORY_ALREADY_EXISTS",
		},
		{
			name: "missing referenced category",
			err: fmt.Errorf("insert expense: %w", &pgconn.PgError{
				Code:           "23503",
				TableName:      "expenses",
				ConstraintName: "expenses_category_id_fkey",
			}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "CATEGORY_NOT_FOUND",
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: "23514", TableName: "expenses", ColumnName: "value"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "EXPENSE_INVALID",
		},
		{
			name:       "no rows with table hint",
			err:        fmt.Errorf("table:expenses: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantCode:   "EXPENSE_NOT_FOUND",
		},
		{
			name:       "no rows without hint",
			err:        pgx.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unknown pg error",
			err:        &pgconn.PgError{Code: "42P01"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestHandleError_KeepsHTTPError(t *testing.T) {
	original := errs.NewNotFoundError("Category not found", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UniqueMessageNamesColumn(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"})
	assert.Equal(t, "A user with this email already exists", err.Error())
}
