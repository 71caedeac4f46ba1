//go:build unit

package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"room-slot-service/internal/handler/httperr"
	"room-slot-service/internal/handler/middleware"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logMw := middleware.NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "15:04:05"})

	r := gin.New()
	r.Use(middleware.CustomRecovery(logger))
	r.Use(logMw.LoggingMiddleware())
	r.Use(middleware.ErrorHandler(logger))

	r.GET("/rooms/:roomId/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": middleware.GetRequestID(c)})
	})
	r.GET("/boom", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("pool exhausted"), "Internal server error", nil)
	})
	r.GET("/missing", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusNotFound, errors.New("slot 9 not found"), "Slot not found", nil)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("nil map")
	})
	r.GET("/status-only", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	return r, &buf
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	r, _ := newRouter(t)

	t.Run("generates an id and echoes it", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/rooms/7/ok", nil)

		var body struct {
			RequestID string `json:"request_id"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		require.NotEmpty(t, body.RequestID)
		assert.Equal(t, body.RequestID, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/rooms/7/ok", nil,
			httptest.WithHeader(middleware.RequestIDHeader, "res-42-trace"))

		assert.Equal(t, "res-42-trace", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		long := string(bytes.Repeat([]byte("x"), 200))
		w := httptest.PerformRequest(t, r, http.MethodGet, "/rooms/7/ok", nil,
			httptest.WithHeader(middleware.RequestIDHeader, long))

		got := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, got)
		assert.NotEqual(t, long, got)
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("server errors log their cause", func(t *testing.T) {
		r, logs := newRouter(t)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/boom", nil,
			httptest.WithHeader(middleware.RequestIDHeader, "trace-500"))

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
		assert.Contains(t, logs.String(), "pool exhausted")
		assert.Contains(t, logs.String(), "trace-500")
	})

	t.Run("client errors are not logged as failures", func(t *testing.T) {
		r, logs := newRouter(t)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/missing", nil)

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")
		assert.NotContains(t, logs.String(), "slot 9 not found")
	})

	t.Run("status without body is kept", func(t *testing.T) {
		r, _ := newRouter(t)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/status-only", nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}

func TestCustomRecovery(t *testing.T) {
	r, logs := newRouter(t)

	w := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil)

	httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
	assert.Contains(t, logs.String(), "recovered from panic")
}
