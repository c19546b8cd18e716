package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"thumbforge/internal/infrastructure/metrics"
)

// Metrics records per-request counters and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		metrics.RecordRequest(c.Request.Method, endpoint, status, duration)
	}
}
