// Package expense models monetary records and the filters used to
// query and total them.
package expense

import (
	"github.com/shopspring/decimal"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
)

// Expense is a positive amount spent on a date, filed under a category
// and owned by a user.
type Expense struct {
	model.Base
	Value    decimal.Decimal   `json:"value" db:"value"`
	Date     model.Date        `json:"date" db:"date"`
	Category category.Category `json:"category"`
	UserID   int64             `json:"user_id" db:"user_id"`
}

// Filter selects expenses. Nil fields are absent.
type Filter struct {
	CategoryID *int64
	StartDate  *model.Date
	EndDate    *model.Date
}

func (f Filter) HasCategory() bool {
	return f.CategoryID != nil
}

// HasDateRange reports whether both bounds are present.
func (f Filter) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

// HasPartialDateRange reports whether exactly one bound is present.
func (f Filter) HasPartialDateRange() bool {
	return (f.StartDate == nil) != (f.EndDate == nil)
}

// Total is the sum of the expenses matching a filter.
type Total struct {
	Total decimal.Decimal `json:"total"`
}

// Recorded is the notification sent after an expense is stored.
type Recorded struct {
	ExpenseID int64           `json:"expense_id"`
	UserName  string          `json:"user_name"`
	UserEmail string          `json:"user_email"`
	Value     decimal.Decimal `json:"value"`
	Date      model.Date      `json:"date"`
	Category  string          `json:"category"`
}

// MaxValue is the exclusive upper bound of a value. Values are stored
// as NUMERIC(12,2).
var MaxValue = decimal.New(1, 10)

// CheckValue returns why v cannot be stored as an expense value, or ""
// when it can.
func CheckValue(v decimal.Decimal) string {
	switch {
	case !v.IsPositive():
		return "must be greater than 0"
	case !v.Equal(v.Truncate(2)):
		return "must have at most 2 decimal places"
	case v.GreaterThanOrEqual(MaxValue):
		return "must be less than " + MaxValue.String()
	}
	return ""
}
