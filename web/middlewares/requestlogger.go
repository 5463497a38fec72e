package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teamop.dk/bosted/logging"
)

// RequestLogger puts a request scoped logger on the request context and logs
// each request once it completes.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		logger := base.With("request_id", requestID)
		c.Request = c.Request.WithContext(logging.ContextWithLogger(c.Request.Context(), logger))

		start := time.Now()
		c.Next()

		logging.FromContext(c.Request.Context()).Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
