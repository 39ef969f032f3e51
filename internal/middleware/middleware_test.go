package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/expense-tracker/internal/config"
	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/deppfellow/expense-tracker/internal/server"
)

func newTestServer(buf *bytes.Buffer) *server.Server {
	logger := zerolog.New(buf)
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{RateLimit: 1},
		},
		Logger: &logger,
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", rec.Body.String())
	})

	t.Run("oversized is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})
}

func TestContextEnhancer_LoggerReachesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(&buf)

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/items/:id", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from service")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "from service", line["message"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "/items/:id", line["path"])
}

func TestGetLogger_Fallback(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	logger := GetLogger(c)
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestGlobalErrorHandler(t *testing.T) {
	code := "CATEGORY_NOT_FOUND"

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "http error kept",
			err:        errs.NewNotFoundError("Category 3 not found", true, &code),
			wantStatus: http.StatusNotFound,
			wantCode:   code,
		},
		{
			name:       "echo bind error",
			err:        echo.NewHTTPError(http.StatusBadRequest, "bad body"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "unknown route",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "no rows with table hint",
			err:        fmt.Errorf("table:expenses: id=9: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantCode:   "EXPENSE_NOT_FOUND",
		},
		{
			name:       "anything else",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			global := NewGlobalMiddlewares(newTestServer(&buf))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusOf(nil, http.StatusOK))
	assert.Equal(t, http.StatusConflict, StatusOf(errs.NewConflictError("in use", true, nil), http.StatusOK))
	assert.Equal(t, http.StatusTeapot, StatusOf(echo.NewHTTPError(http.StatusTeapot), http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(fmt.Errorf("plain"), http.StatusOK))
}

func TestRateLimit_Denies(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(&buf)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	statuses := map[int]int{}
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses[rec.Code]++
	}

	assert.GreaterOrEqual(t, statuses[http.StatusNoContent], 1)
	assert.GreaterOrEqual(t, statuses[http.StatusTooManyRequests], 1)
}
