package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/deppfellow/expense-tracker/internal/service"
)

// ExportFilename is the download name of the CSV export.
const ExportFilename = "expenses.csv"

type ExpenseHandler struct {
	Handler
	expenseService *service.ExpenseService
}

func NewExpenseHandler(s *server.Server, expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		Handler:        NewHandler(s),
		expenseService: expenseService,
	}
}

// Search lists expenses, optionally filtered by category and/or a date
// range.
func (h *ExpenseHandler) Search(c echo.Context, q *expense.SearchExpensesQuery) (model.Page[expense.Expense], error) {
	return h.expenseService.Search(c.Request().Context(), q.Filter(), q.PageQuery)
}

func (h *ExpenseHandler) Total(c echo.Context, q *expense.TotalExpensesQuery) (expense.Total, error) {
	return h.expenseService.Total(c.Request().Context(), q.Filter())
}

func (h *ExpenseHandler) Export(c echo.Context, q *expense.ExportExpensesQuery) ([]byte, error) {
	items, err := h.expenseService.Export(c.Request().Context(), q.Filter())
	if err != nil {
		return nil, err
	}
	return expense.EncodeCSV(items)
}

func (h *ExpenseHandler) GetByID(c echo.Context, payload *expense.GetExpenseByIDPayload) (*expense.Expense, error) {
	return h.expenseService.GetByID(c.Request().Context(), payload.ID)
}

func (h *ExpenseHandler) Create(c echo.Context, payload *expense.CreateExpensePayload) (*expense.Expense, error) {
	return h.expenseService.Create(c.Request().Context(), payload)
}

func (h *ExpenseHandler) Update(c echo.Context, payload *expense.UpdateExpensePayload) (*expense.Expense, error) {
	return h.expenseService.Update(c.Request().Context(), payload)
}

func (h *ExpenseHandler) Delete(c echo.Context, payload *expense.DeleteExpensePayload) error {
	return h.expenseService.Delete(c.Request().Context(), payload.ID)
}
