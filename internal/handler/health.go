package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/expense-tracker/internal/middleware"
	"github.com/deppfellow/expense-tracker/internal/server"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports whether PostgreSQL and Redis are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth answers 200 when every dependency responds and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	checks := map[string]func(ctx context.Context) error{}
	if h.server.DB != nil {
		checks["database"] = h.server.DB.Pool.Ping
	}
	if h.server.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}
	}

	for name, ping := range checks {
		result := h.runCheck(c.Request().Context(), name, ping)
		response.Checks[name] = result

		if result.Status != "healthy" {
			response.Status = "unhealthy"
			logger.Error().
				Str("check", name).
				Str("error", result.Error).
				Str("response_time", result.ResponseTime).
				Msg("health check failed")
		}
	}

	if response.Status != "healthy" {
		h.recordHealthEvent(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) runCheck(parent context.Context, name string, ping func(ctx context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(parent, healthCheckTimeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		h.recordHealthEvent(map[string]any{
			"check_type":       name,
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}
	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		attrs["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
