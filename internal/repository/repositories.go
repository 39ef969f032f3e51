// Package repository holds the SQL for every table.
//
// Each repository runs hand-written queries on the shared pgx pool.
// Lookups that match nothing return an error wrapping pgx.ErrNoRows
// prefixed with "table:<name>:" so sqlerr can name the entity.
package repository

import (
	"github.com/deppfellow/expense-tracker/internal/server"
)

// Repositories groups every repository built on the server's pool.
type Repositories struct {
	Category *CategoryRepository
	Expense  *ExpenseRepository
	User     *UserRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Category: NewCategoryRepository(s.DB.Pool),
		Expense:  NewExpenseRepository(s.DB.Pool),
		User:     NewUserRepository(s.DB.Pool),
	}
}
