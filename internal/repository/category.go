package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, created_at, updated_at`

func (r *CategoryRepository) List(ctx context.Context, q model.PageQuery) (model.Page[category.Category], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return model.Page[category.Category]{}, fmt.Errorf("failed to count categories: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY id
		LIMIT $1 OFFSET $2`,
		q.Limit(), q.Offset(),
	)
	if err != nil {
		return model.Page[category.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		return model.Page[category.Category]{}, fmt.Errorf("failed to collect categories: %w", err)
	}

	return model.NewPage(categories, q, total), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*category.Category, error) {
	return r.getOne(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING `+categoryColumns,
		name,
	)
}

func (r *CategoryRepository) Rename(ctx context.Context, id int64, name string) (*category.Category, error) {
	return r.getOne(ctx, `
		UPDATE categories
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, name,
	)
}

// Delete removes the category. A category still referenced by expenses
// fails with a foreign key violation.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:categories: id %d: %w", id, pgx.ErrNoRows)
	}
	return nil
}

func (r *CategoryRepository) getOne(ctx context.Context, query string, args ...any) (*category.Category, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table:categories: %w", err)
		}
		return nil, fmt.Errorf("failed to collect category: %w", err)
	}

	return &c, nil
}
