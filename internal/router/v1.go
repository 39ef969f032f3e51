package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/expense-tracker/internal/handler"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/model/user"
)

func registerCategoryRoutes(g *echo.Group, h *handler.CategoryHandler) {
	categories := g.Group("/categories")

	categories.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &category.ListCategoriesQuery{}))
	categories.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &category.CreateCategoryPayload{}))
	categories.GET("/:id", handler.Handle(h.Handler, h.GetByID, http.StatusOK, &category.GetCategoryByIDPayload{}))
	categories.PUT("/:id", handler.Handle(h.Handler, h.Rename, http.StatusOK, &category.RenameCategoryPayload{}))
	categories.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &category.DeleteCategoryPayload{}))
}

func registerExpenseRoutes(g *echo.Group, h *handler.ExpenseHandler) {
	expenses := g.Group("/expenses")

	expenses.GET("", handler.Handle(h.Handler, h.Search, http.StatusOK, &expense.SearchExpensesQuery{}))
	expenses.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &expense.CreateExpensePayload{}))
	expenses.GET("/total", handler.Handle(h.Handler, h.Total, http.StatusOK, &expense.TotalExpensesQuery{}))
	expenses.GET("/export", handler.HandleFile(h.Handler, h.Export, http.StatusOK, &expense.ExportExpensesQuery{}, handler.ExportFilename, "text/csv"))
	expenses.GET("/:id", handler.Handle(h.Handler, h.GetByID, http.StatusOK, &expense.GetExpenseByIDPayload{}))
	expenses.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &expense.UpdateExpensePayload{}))
	expenses.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &expense.DeleteExpensePayload{}))
}

func registerUserRoutes(g *echo.Group, h *handler.UserHandler) {
	users := g.Group("/users")

	users.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &user.ListUsersQuery{}))
	users.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &user.CreateUserPayload{}))
	users.GET("/:id", handler.Handle(h.Handler, h.GetByID, http.StatusOK, &user.GetUserByIDPayload{}))
}
