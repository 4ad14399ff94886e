package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs one line per request through slog
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			logger.Error("❌ [HTTP] Request failed", attrs...)
		case status >= 400:
			logger.Warn("⚠️ [HTTP] Request rejected", attrs...)
		default:
			logger.Info("🌐 [HTTP] Request served", attrs...)
		}
	}
}
