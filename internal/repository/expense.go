package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// expenseSelect reads an expense joined with its category. The scan
// order is fixed by scanExpense.
const expenseSelect = `
	SELECT
		e.id, e.value, e.date, e.user_id, e.created_at, e.updated_at,
		c.id, c.name, c.created_at, c.updated_at
	FROM expenses e
	JOIN categories c ON c.id = e.category_id`

const expenseOrder = ` ORDER BY e.date DESC, e.id DESC`

const (
	whereCategoryAndDate = ` WHERE e.category_id = $1 AND e.date BETWEEN $2 AND $3`
	whereCategory        = ` WHERE e.category_id = $1`
	whereDate            = ` WHERE e.date BETWEEN $1 AND $2`
)

func scanExpense(row pgx.CollectableRow) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID, &e.Value, &e.Date.Time, &e.UserID, &e.CreatedAt, &e.UpdatedAt,
		&e.Category.ID, &e.Category.Name, &e.Category.CreatedAt, &e.Category.UpdatedAt,
	)
	return e, err
}

// FindByCategoryAndDateBetween lists the expenses of a category dated
// within [start, end].
func (r *ExpenseRepository) FindByCategoryAndDateBetween(ctx context.Context, categoryID int64, start, end model.Date, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.findPage(ctx, whereCategoryAndDate, q, categoryID, start.Time, end.Time)
}

func (r *ExpenseRepository) FindByCategory(ctx context.Context, categoryID int64, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.findPage(ctx, whereCategory, q, categoryID)
}

func (r *ExpenseRepository) FindByDateBetween(ctx context.Context, start, end model.Date, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.findPage(ctx, whereDate, q, start.Time, end.Time)
}

func (r *ExpenseRepository) FindAll(ctx context.Context, q model.PageQuery) (model.Page[expense.Expense], error) {
	return r.findPage(ctx, "", q)
}

func (r *ExpenseRepository) findPage(ctx context.Context, where string, q model.PageQuery, args ...any) (model.Page[expense.Expense], error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM expenses e` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return model.Page[expense.Expense]{}, fmt.Errorf("failed to count expenses: %w", err)
	}

	n := len(args)
	query := expenseSelect + where + expenseOrder + fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	rows, err := r.pool.Query(ctx, query, append(args, q.Limit(), q.Offset())...)
	if err != nil {
		return model.Page[expense.Expense]{}, fmt.Errorf("failed to query expenses: %w", err)
	}

	expenses, err := pgx.CollectRows(rows, scanExpense)
	if err != nil {
		return model.Page[expense.Expense]{}, fmt.Errorf("failed to collect expenses: %w", err)
	}

	return model.NewPage(expenses, q, total), nil
}

func (r *ExpenseRepository) SumByCategoryAndDateBetween(ctx context.Context, categoryID int64, start, end model.Date) (decimal.Decimal, error) {
	return r.sum(ctx, whereCategoryAndDate, categoryID, start.Time, end.Time)
}

func (r *ExpenseRepository) SumByCategory(ctx context.Context, categoryID int64) (decimal.Decimal, error) {
	return r.sum(ctx, whereCategory, categoryID)
}

func (r *ExpenseRepository) SumByDateBetween(ctx context.Context, start, end model.Date) (decimal.Decimal, error) {
	return r.sum(ctx, whereDate, start.Time, end.Time)
}

func (r *ExpenseRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "")
}

// sum is 0 when nothing matches.
func (r *ExpenseRepository) sum(ctx context.Context, where string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(e.value), 0) FROM expenses e`+where, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	return r.getOne(ctx, expenseSelect+` WHERE e.id = $1`, id)
}

// Create inserts e and returns the stored row with its category.
func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	return r.getOne(ctx, `
		WITH e AS (
			INSERT INTO expenses (value, date, category_id, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT
			e.id, e.value, e.date, e.user_id, e.created_at, e.updated_at,
			c.id, c.name, c.created_at, c.updated_at
		FROM e
		JOIN categories c ON c.id = e.category_id`,
		e.Value, e.Date.Time, e.Category.ID, e.UserID,
	)
}

// Update writes every mutable column of e.
func (r *ExpenseRepository) Update(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	return r.getOne(ctx, `
		WITH e AS (
			UPDATE expenses
			SET value = $2, date = $3, category_id = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT
			e.id, e.value, e.date, e.user_id, e.created_at, e.updated_at,
			c.id, c.name, c.created_at, c.updated_at
		FROM e
		JOIN categories c ON c.id = e.category_id`,
		e.ID, e.Value, e.Date.Time, e.Category.ID,
	)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:expenses: id %d: %w", id, pgx.ErrNoRows)
	}
	return nil
}

func (r *ExpenseRepository) getOne(ctx context.Context, query string, args ...any) (*expense.Expense, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	e, err := pgx.CollectExactlyOneRow(rows, scanExpense)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table:expenses: %w", err)
		}
		return nil, fmt.Errorf("failed to collect expense: %w", err)
	}

	return &e, nil
}
