package middleware

import (
	"log/slog"
	"slices"

	"room-slot-service/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	// callers correlate their logs with ours through the request id
	expose := cfg.ExposeHeaders
	if !slices.Contains(expose, RequestIDHeader) {
		expose = append(slices.Clone(expose), RequestIDHeader)
	}
	allow := cfg.AllowHeaders
	if !slices.Contains(allow, RequestIDHeader) {
		allow = append(slices.Clone(allow), RequestIDHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allow,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	logger.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
