package middleware

import (
	"strconv"

	"contract-registry.backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts responses per route template and status code
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPResponses.WithLabelValues(path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
