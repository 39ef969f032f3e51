package handler

import (
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/deppfellow/expense-tracker/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Category *CategoryHandler
	Expense  *ExpenseHandler
	User     *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Category: NewCategoryHandler(s, services.Category),
		Expense:  NewExpenseHandler(s, services.Expense),
		User:     NewUserHandler(s, services.User),
	}
}
