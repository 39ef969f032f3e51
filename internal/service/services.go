package service

import (
	"github.com/deppfellow/expense-tracker/internal/repository"
	"github.com/deppfellow/expense-tracker/internal/server"
)

// Services groups every service the handlers call.
type Services struct {
	Category *CategoryService
	Expense  *ExpenseService
	User     *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier ExpenseNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Category: NewCategoryService(repos.Category),
		Expense:  NewExpenseService(repos.Expense, repos.Category, repos.User, notifier),
		User:     NewUserService(repos.User),
	}, nil
}

var (
	_ CategoryRepository = (*repository.CategoryRepository)(nil)
	_ ExpenseRepository  = (*repository.ExpenseRepository)(nil)
	_ UserRepository     = (*repository.UserRepository)(nil)
)
