package repotest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
)

type ExpenseRepository struct {
	store *Store
}

func inRange(d, start, end model.Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

func newestFirst(a, b expense.Expense) bool {
	if !a.Date.Equal(b.Date.Time) {
		return a.Date.After(b.Date.Time)
	}
	return a.ID > b.ID
}

// match must be called with mu held.
func (s *Store) match(keep func(e expense.Expense) bool) []expense.Expense {
	var out []expense.Expense
	for _, e := range s.expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func sum(items []expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Value)
	}
	return total
}

func (r *ExpenseRepository) find(call string, q model.PageQuery, keep func(e expense.Expense) bool) (model.Page[expense.Expense], error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(call)

	return paginate(s.match(keep), q, newestFirst), nil
}

func (r *ExpenseRepository) total(call string, keep func(e expense.Expense) bool) (decimal.Decimal, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(call)

	return sum(s.match(keep)), nil
}

func (r *ExpenseRepository) FindByCategoryAndDateBetween(_ context.Context, categoryID int64, start, end model.Date, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.find("Expense.FindByCategoryAndDateBetween", q, func(e expense.Expense) bool {
		return e.Category.ID == categoryID && inRange(e.Date, start, end)
	})
}

func (r *ExpenseRepository) FindByCategory(_ context.Context, categoryID int64, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.find("Expense.FindByCategory", q, func(e expense.Expense) bool {
		return e.Category.ID == categoryID
	})
}

func (r *ExpenseRepository) FindByDateBetween(_ context.Context, start, end model.Date, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.find("Expense.FindByDateBetween", q, func(e expense.Expense) bool {
		return inRange(e.Date, start, end)
	})
}

func (r *ExpenseRepository) FindAll(_ context.Context, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.find("Expense.FindAll", q, func(expense.Expense) bool { return true })
}

func (r *ExpenseRepository) SumByCategoryAndDateBetween(_ context.Context, categoryID int64, start, end model.Date) (decimal.Decimal, error) {
	return r.total("Expense.SumByCategoryAndDateBetween", func(e expense.Expense) bool {
		return e.Category.ID == categoryID && inRange(e.Date, start, end)
	})
}

func (r *ExpenseRepository) SumByCategory(_ context.Context, categoryID int64) (decimal.Decimal, error) {
	return r.total("Expense.SumByCategory", func(e expense.Expense) bool {
		return e.Category.ID == categoryID
	})
}

func (r *ExpenseRepository) SumByDateBetween(_ context.Context, start, end model.Date) (decimal.Decimal, error) {
	return r.total("Expense.SumByDateBetween", func(e expense.Expense) bool {
		return inRange(e.Date, start, end)
	})
}

func (r *ExpenseRepository) SumAll(_ context.Context) (decimal.Decimal, error) {
	return r.total("Expense.SumAll", func(expense.Expense) bool { return true })
}

func (r *ExpenseRepository) GetByID(_ context.Context, id int64) (*expense.Expense, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Expense.GetByID")

	e, ok := s.expenses[id]
	if !ok {
		return nil, noRows("expenses", id)
	}
	return &e, nil
}

func (r *ExpenseRepository) Create(_ context.Context, in *expense.Expense) (*expense.Expense, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Expense.Create")

	c, ok := s.categories[in.Category.ID]
	if !ok {
		return nil, foreignKeyViolation("expenses", "expenses_category_id_fkey")
	}
	if _, ok := s.users[in.UserID]; !ok {
		return nil, foreignKeyViolation("expenses", "expenses_user_id_fkey")
	}

	e := *in
	e.Base = s.nextBase()
	e.Category = c
	s.expenses[e.ID] = e
	return &e, nil
}

func (r *ExpenseRepository) Update(_ context.Context, in *expense.Expense) (*expense.Expense, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Expense.Update")

	current, ok := s.expenses[in.ID]
	if !ok {
		return nil, noRows("expenses", in.ID)
	}
	c, ok := s.categories[in.Category.ID]
	if !ok {
		return nil, foreignKeyViolation("expenses", "expenses_category_id_fkey")
	}

	current.Value = in.Value
	current.Date = in.Date
	current.Category = c
	current.UpdatedAt = time.Now().UTC()
	s.expenses[current.ID] = current
	return &current, nil
}

func (r *ExpenseRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Expense.Delete")

	if _, ok := s.expenses[id]; !ok {
		return noRows("expenses", id)
	}
	delete(s.expenses, id)
	return nil
}
