// Package router builds the Echo instance: the middleware chain, the
// error handler, the system routes and the /api/v1 routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/expense-tracker/internal/handler"
	"github.com/deppfellow/expense-tracker/internal/middleware"
	"github.com/deppfellow/expense-tracker/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerCategoryRoutes(v1, h.Category)
	registerExpenseRoutes(v1, h.Expense)
	registerUserRoutes(v1, h.User)

	return router
}
