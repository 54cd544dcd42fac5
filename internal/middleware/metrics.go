package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/metrics"
)

// RequestMetrics observes the duration of every request by route template.
func RequestMetrics(rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
