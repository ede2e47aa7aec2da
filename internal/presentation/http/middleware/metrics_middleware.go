package middleware

import (
	"time"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records per-route request latency.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}
