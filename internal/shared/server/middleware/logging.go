package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
)

// EntryIDKey is set by handlers that operate on a single history entry.
const EntryIDKey = "entryId"

// Logging emits a structured log per request and records request metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, status, float64(latency.Microseconds())/1000.0)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get(isGuestKey)
		entryID, _ := c.Get(EntryIDKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"entry_id":    entryID,
			"is_guest":    isGuest,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
