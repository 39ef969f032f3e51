package expense

import (
	"github.com/shopspring/decimal"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/validation"
)

// ------------------------------------------------------------

type CreateExpensePayload struct {
	Value      decimal.Decimal `json:"value"`
	Date       model.Date      `json:"date"`
	CategoryID int64           `json:"category_id" validate:"required,gt=0"`
	UserID     int64           `json:"user_id" validate:"required,gt=0"`
}

func (p *CreateExpensePayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}

	var errs validation.CustomValidationErrors
	if msg := CheckValue(p.Value); msg != "" {
		errs = append(errs, validation.CustomValidationError{Field: "value", Message: msg})
	}
	if p.Date.IsZero() {
		errs = append(errs, validation.CustomValidationError{Field: "date", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ------------------------------------------------------------

// UpdateExpensePayload is a partial update: only non-nil fields are applied.
type UpdateExpensePayload struct {
	ID         int64            `param:"id" json:"-" validate:"required,gt=0"`
	Value      *decimal.Decimal `json:"value"`
	Date       *model.Date      `json:"date"`
	CategoryID *int64           `json:"category_id"`
}

func (p *UpdateExpensePayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}

	var errs validation.CustomValidationErrors
	if p.Value != nil {
		if msg := CheckValue(*p.Value); msg != "" {
			errs = append(errs, validation.CustomValidationError{Field: "value", Message: msg})
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		errs = append(errs, validation.CustomValidationError{Field: "date", Message: "must not be empty"})
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		errs = append(errs, validation.CustomValidationError{Field: "category_id", Message: "must be greater than 0"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overwrites the fields of e that are present in p.
func (p *UpdateExpensePayload) Apply(e *Expense) {
	if p.Value != nil {
		e.Value = *p.Value
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.CategoryID != nil {
		e.Category.ID = *p.CategoryID
	}
}

// ------------------------------------------------------------

type GetExpenseByIDPayload struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (p *GetExpenseByIDPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type DeleteExpensePayload struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (p *DeleteExpensePayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// FilterQuery carries the optional filters of the list and total
// endpoints. A zero CategoryID or date means the filter is absent.
type FilterQuery struct {
	CategoryID int64      `query:"category_id" validate:"min=0"`
	StartDate  model.Date `query:"start_date"`
	EndDate    model.Date `query:"end_date"`
}

// Filter converts the query into a Filter.
func (q FilterQuery) Filter() Filter {
	var f Filter
	if q.CategoryID > 0 {
		id := q.CategoryID
		f.CategoryID = &id
	}
	if !q.StartDate.IsZero() {
		start := q.StartDate
		f.StartDate = &start
	}
	if !q.EndDate.IsZero() {
		end := q.EndDate
		f.EndDate = &end
	}
	return f
}

type SearchExpensesQuery struct {
	FilterQuery
	model.PageQuery
}

func (q *SearchExpensesQuery) Validate() error {
	return validation.Struct(q)
}

type TotalExpensesQuery struct {
	FilterQuery
}

func (q *TotalExpensesQuery) Validate() error {
	return validation.Struct(q)
}

// ExportExpensesQuery selects the expenses written to the CSV export.
type ExportExpensesQuery struct {
	FilterQuery
}

func (q *ExportExpensesQuery) Validate() error {
	return validation.Struct(q)
}
