package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/user"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, name, email string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		name, email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %w", id, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table:users: id %d: %w", id, err)
		}
		return nil, fmt.Errorf("failed to collect user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, q model.PageQuery) (model.Page[user.User], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return model.Page[user.User]{}, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`,
		q.Limit(), q.Offset(),
	)
	if err != nil {
		return model.Page[user.User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return model.Page[user.User]{}, fmt.Errorf("failed to collect users: %w", err)
	}

	return model.NewPage(users, q, total), nil
}
