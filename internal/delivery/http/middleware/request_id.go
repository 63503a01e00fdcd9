package middleware

import (
	"time"

	"matchmakr-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, echoed in the response header and envelope,
// and writes one access log line when the request completes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set("RequestID", rid)
		c.Header(RequestIDHeader, rid)

		c.Next()

		logger.Log.Info("HTTP access",
			"rid", rid,
			"ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"resp_bytes", c.Writer.Size(),
		)
	}
}
