package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/user"
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/deppfellow/expense-tracker/internal/service"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) Create(c echo.Context, payload *user.CreateUserPayload) (*user.User, error) {
	return h.userService.Create(c.Request().Context(), payload)
}

func (h *UserHandler) GetByID(c echo.Context, payload *user.GetUserByIDPayload) (*user.User, error) {
	return h.userService.GetByID(c.Request().Context(), payload.ID)
}

func (h *UserHandler) List(c echo.Context, q *user.ListUsersQuery) (model.Page[user.User], error) {
	return h.userService.List(c.Request().Context(), q.PageQuery)
}
