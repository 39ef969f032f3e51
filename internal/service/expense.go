package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/model/user"
	"github.com/deppfellow/expense-tracker/internal/sqlerr"
)

// notifyTimeout bounds the enqueue of the "expense recorded" task.
const notifyTimeout = 2 * time.Second

// ExpenseRepository exposes one canned query (and one sum) per filter
// combination.
type ExpenseRepository interface {
	FindByCategoryAndDateBetween(ctx context.Context, categoryID int64, start, end model.Date, q model.PageQuery) (model.Page[expense.Expense], error)
	FindByCategory(ctx context.Context, categoryID int64, q model.PageQuery) (model.Page[expense.Expense], error)
	FindByDateBetween(ctx context.Context, start, end model.Date, q model.PageQuery) (model.Page[expense.Expense], error)
	FindAll(ctx context.Context, q model.PageQuery) (model.Page[expense.Expense], error)

	SumByCategoryAndDateBetween(ctx context.Context, categoryID int64, start, end model.Date) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, categoryID int64) (decimal.Decimal, error)
	SumByDateBetween(ctx context.Context, start, end model.Date) (decimal.Decimal, error)
	SumAll(ctx context.Context) (decimal.Decimal, error)

	GetByID(ctx context.Context, id int64) (*expense.Expense, error)
	Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error)
	Update(ctx context.Context, e *expense.Expense) (*expense.Expense, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryFinder interface {
	GetByID(ctx context.Context, id int64) (*category.Category, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// ExpenseNotifier is told about every stored expense.
type ExpenseNotifier interface {
	NotifyExpenseRecorded(ctx context.Context, payload expense.Recorded) error
}

type ExpenseService struct {
	expenses   ExpenseRepository
	categories CategoryFinder
	users      UserFinder
	notifier   ExpenseNotifier
}

// NewExpenseService builds the service. notifier may be nil.
func NewExpenseService(expenses ExpenseRepository, categories CategoryFinder, users UserFinder, notifier ExpenseNotifier) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		users:      users,
		notifier:   notifier,
	}
}

// checkDateRange rejects a lone bound and a start after the end.
func checkDateRange(f expense.Filter) error {
	if f.HasPartialDateRange() {
		return errInvalidDateRange("Both start_date and end_date are required to filter by date")
	}
	if f.HasDateRange() && f.StartDate.After(f.EndDate.Time) {
		return errInvalidDateRange("End date cannot be before the start date")
	}
	return nil
}

// Search lists the expenses matching f, choosing the query for the
// filters that are present.
func (s *ExpenseService) Search(ctx context.Context, f expense.Filter, q model.PageQuery) (model.Page[expense.Expense], error) {
	if err := checkDateRange(f); err != nil {
		return model.Page[expense.Expense]{}, err
	}

	switch {
	case f.HasCategory() && f.HasDateRange():
		return s.expenses.FindByCategoryAndDateBetween(ctx, *f.CategoryID, *f.StartDate, *f.EndDate, q)
	case f.HasCategory():
		return s.expenses.FindByCategory(ctx, *f.CategoryID, q)
	case f.HasDateRange():
		return s.expenses.FindByDateBetween(ctx, *f.StartDate, *f.EndDate, q)
	default:
		return s.expenses.FindAll(ctx, q)
	}
}

// Export returns every expense matching f, walking the pages of Search.
func (s *ExpenseService) Export(ctx context.Context, f expense.Filter) ([]expense.Expense, error) {
	var all []expense.Expense
	q := model.PageQuery{Page: 1, Size: model.MaxPageSize}

	for {
		page, err := s.Search(ctx, f, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)

		if q.Page >= page.TotalPages {
			return all, nil
		}
		q.Page++
	}
}

// Total sums the expenses matching f. A category filter must name an
// existing category.
func (s *ExpenseService) Total(ctx context.Context, f expense.Filter) (expense.Total, error) {
	if err := checkDateRange(f); err != nil {
		return expense.Total{}, err
	}

	if f.HasCategory() {
		if err := s.ensureCategory(ctx, *f.CategoryID); err != nil {
			return expense.Total{}, err
		}
	}

	var (
		sum decimal.Decimal
		err error
	)
	switch {
	case f.HasCategory() && f.HasDateRange():
		sum, err = s.expenses.SumByCategoryAndDateBetween(ctx, *f.CategoryID, *f.StartDate, *f.EndDate)
	case f.HasCategory():
		sum, err = s.expenses.SumByCategory(ctx, *f.CategoryID)
	case f.HasDateRange():
		sum, err = s.expenses.SumByDateBetween(ctx, *f.StartDate, *f.EndDate)
	default:
		sum, err = s.expenses.SumAll(ctx)
	}
	if err != nil {
		return expense.Total{}, err
	}

	return expense.Total{Total: sum}, nil
}

func (s *ExpenseService) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errExpenseNotFound(id)
		}
		return nil, err
	}
	return e, nil
}

// Create stores a new expense for an existing category and user, then
// queues the "expense recorded" notification.
func (s *ExpenseService) Create(ctx context.Context, payload *expense.CreateExpensePayload) (*expense.Expense, error) {
	if msg := expense.CheckValue(payload.Value); msg != "" {
		return nil, errInvalidInput("value", msg)
	}
	if payload.Date.IsZero() {
		return nil, errInvalidInput("date", "is required")
	}

	if err := s.ensureCategory(ctx, payload.CategoryID); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, errUserNotFound(payload.UserID)
		}
		return nil, err
	}

	created, err := s.expenses.Create(ctx, &expense.Expense{
		Value:    payload.Value,
		Date:     payload.Date,
		Category: category.Category{Base: model.Base{ID: payload.CategoryID}},
		UserID:   payload.UserID,
	})
	if err != nil {
		if sqlerr.IsForeignKeyViolation(err) {
			return nil, referenceError(err, payload.CategoryID, payload.UserID)
		}
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().
		Int64("expense_id", created.ID).
		Int64("category_id", created.Category.ID).
		Int64("user_id", created.UserID).
		Str("value", created.Value.String()).
		Msg("expense created")

	s.notify(ctx, created, owner)

	return created, nil
}

// notify never fails the request; a lost notification is only logged.
func (s *ExpenseService) notify(ctx context.Context, e *expense.Expense, owner *user.User) {
	if s.notifier == nil {
		return
	}

	enqueueCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	err := s.notifier.NotifyExpenseRecorded(enqueueCtx, expense.Recorded{
		ExpenseID: e.ID,
		UserName:  owner.Name,
		UserEmail: owner.Email,
		Value:     e.Value,
		Date:      e.Date,
		Category:  e.Category.Name,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Int64("expense_id", e.ID).
			Msg("failed to queue expense recorded notification")
	}
}

// Update applies a partial update: only the fields present in payload
// overwrite the stored expense.
func (s *ExpenseService) Update(ctx context.Context, payload *expense.UpdateExpensePayload) (*expense.Expense, error) {
	if payload.Value != nil {
		if msg := expense.CheckValue(*payload.Value); msg != "" {
			return nil, errInvalidInput("value", msg)
		}
	}

	current, err := s.GetByID(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	if payload.CategoryID != nil && *payload.CategoryID != current.Category.ID {
		if err := s.ensureCategory(ctx, *payload.CategoryID); err != nil {
			return nil, err
		}
	}

	payload.Apply(current)

	updated, err := s.expenses.Update(ctx, current)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, errExpenseNotFound(payload.ID)
		case sqlerr.IsForeignKeyViolation(err):
			return nil, referenceError(err, current.Category.ID, current.UserID)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("expense_id", updated.ID).Msg("expense updated")
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return errExpenseNotFound(id)
		}
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("expense_id", id).Msg("expense deleted")
	return nil
}

func (s *ExpenseService) ensureCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return errCategoryNotFound(id)
		}
		return err
	}
	return nil
}

// referenceError turns a foreign key violation on an expense write into
// the not-found error of the row that disappeared.
func referenceError(err error, categoryID, userID int64) error {
	switch sqlerr.ReferencedEntity(err) {
	case "user":
		return errUserNotFound(userID)
	case "category":
		return errCategoryNotFound(categoryID)
	}
	return err
}
