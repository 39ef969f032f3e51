package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/deppfellow/expense-tracker/internal/service"
)

type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:         NewHandler(s),
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) List(c echo.Context, q *category.ListCategoriesQuery) (model.Page[category.Category], error) {
	return h.categoryService.List(c.Request().Context(), q.PageQuery)
}

func (h *CategoryHandler) GetByID(c echo.Context, payload *category.GetCategoryByIDPayload) (*category.Category, error) {
	return h.categoryService.GetByID(c.Request().Context(), payload.ID)
}

func (h *CategoryHandler) Create(c echo.Context, payload *category.CreateCategoryPayload) (*category.Category, error) {
	return h.categoryService.Create(c.Request().Context(), payload)
}

func (h *CategoryHandler) Rename(c echo.Context, payload *category.RenameCategoryPayload) (*category.Category, error) {
	return h.categoryService.Rename(c.Request().Context(), payload)
}

func (h *CategoryHandler) Delete(c echo.Context, payload *category.DeleteCategoryPayload) error {
	return h.categoryService.Delete(c.Request().Context(), payload.ID)
}
