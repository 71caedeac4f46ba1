package middleware

import (
	"log/slog"
	"net/http"

	"room-slot-service/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error left by a handler and logs the
// wrapped cause of every server-side failure.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			resp, ok := e.Meta.(httperr.Response)
			if ok && resp.Status >= http.StatusInternalServerError {
				logger.Error("request failed",
					"request_id", GetRequestID(c),
					"path", c.FullPath(),
					"error", e.Err.Error())
			}
		}

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("recovered from panic",
					"request_id", GetRequestID(c),
					"panic", r,
					"path", c.Request.URL.Path)
				httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
