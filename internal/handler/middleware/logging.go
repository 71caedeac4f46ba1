package middleware

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 128
)

type Logger struct {
	logger   *slog.Logger
	cfg      config.LogConfig
	timezone *time.Location
}

func NewLogger(cfg config.LogConfig) *Logger {
	timezone, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		timezone = time.UTC
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", "room-slot-service")
	slog.SetDefault(logger)

	return &Logger{logger: logger, cfg: cfg, timezone: timezone}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware tags each request with an id, echoes it back in
// X-Request-ID, logs start and completion, and records HTTP metrics.
// A caller-supplied id is kept so one reservation can be traced across
// services.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := incomingRequestID(c)
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		for _, p := range []struct{ param, key string }{
			{"roomId", "room_id"},
			{"reservationId", "reservation_id"},
			{"name", "job"},
		} {
			if v := c.Param(p.param); v != "" {
				attrs = append(attrs, slog.String(p.key, v))
			}
		}

		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Request started", attrs...)

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		attrs = append(attrs,
			slog.Int("status_code", status),
			slog.Duration("duration", elapsed),
		)
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		l.logger.LogAttrs(context.Background(), level, "Request completed", attrs...)
	}
}

func incomingRequestID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
	if id != "" && len(id) <= maxRequestIDLen {
		return id
	}
	return uuid.NewString()
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
