// Package repotest provides in-memory repositories for service and
// handler tests.
//
// They follow the PostgreSQL repositories closely: lookups that match
// nothing wrap pgx.ErrNoRows, and constraint failures are returned as
// *pgconn.PgError with the same SQLSTATE and constraint names as the
// schema.
package repotest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/model/user"
)

// Store holds the rows of all three tables so foreign keys can be checked.
type Store struct {
	mu         sync.Mutex
	seq        int64
	categories map[int64]category.Category
	users      map[int64]user.User
	expenses   map[int64]expense.Expense

	// Calls records the repository methods invoked, in order.
	Calls []string
}

func NewStore() *Store {
	return &Store{
		categories: map[int64]category.Category{},
		users:      map[int64]user.User{},
		expenses:   map[int64]expense.Expense{},
	}
}

func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

func (s *Store) Expenses() *ExpenseRepository {
	return &ExpenseRepository{store: s}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// ResetCalls clears the recorded calls.
func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = nil
}

// record must be called with mu held.
func (s *Store) record(call string) {
	s.Calls = append(s.Calls, call)
}

func (s *Store) nextBase() model.Base {
	s.seq++
	now := time.Now().UTC()
	return model.Base{ID: s.seq, CreatedAt: now, UpdatedAt: now}
}

func noRows(table string, id any) error {
	return fmt.Errorf("table:%s: id %v: %w", table, id, pgx.ErrNoRows)
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        fmt.Sprintf("violates foreign key constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

// paginate sorts by less and cuts the requested page.
func paginate[T any](items []T, q model.PageQuery, less func(a, b T) bool) model.Page[T] {
	sort.Slice(items, func(i, j int) bool { return less(items[i], items[j]) })

	total := int64(len(items))
	start := q.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + q.Limit()
	if end > len(items) {
		end = len(items)
	}

	return model.NewPage(items[start:end], q, total)
}
