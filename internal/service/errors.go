package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/expense-tracker/internal/errs"
)

const (
	CodeCategoryNotFound      = "CATEGORY_NOT_FOUND"
	CodeExpenseNotFound       = "EXPENSE_NOT_FOUND"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeInvalidDateRange      = "INVALID_DATE_RANGE"
	CodeCategoryInUse         = "CATEGORY_IN_USE"
	CodeCategoryAlreadyExists = "CATEGORY_ALREADY_EXISTS"
	CodeUserAlreadyExists     = "USER_ALREADY_EXISTS"
)

func notFound(code, entity string, id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s %d not found", entity, id), true, &code)
}

func errCategoryNotFound(id int64) error {
	return notFound(CodeCategoryNotFound, "Category", id)
}

func errExpenseNotFound(id int64) error {
	return notFound(CodeExpenseNotFound, "Expense", id)
}

func errUserNotFound(id int64) error {
	return notFound(CodeUserNotFound, "User", id)
}

func errInvalidInput(field, message string) error {
	code := CodeInvalidInput
	return errs.NewBadRequestError(
		fmt.Sprintf("%s %s", field, message), true, &code,
		[]errs.FieldError{{Field: field, Error: message}}, nil,
	)
}

func errInvalidDateRange(message string) error {
	code := CodeInvalidDateRange
	return errs.NewBadRequestError(message, true, &code, nil, nil)
}

func errCategoryInUse(id int64) error {
	code := CodeCategoryInUse
	return errs.NewConflictError(
		fmt.Sprintf("Category %d is still referenced by expenses", id), true, &code,
	)
}

func errAlreadyExists(code, message string) error {
	return errs.NewBadRequestError(message, true, &code, nil, nil)
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
