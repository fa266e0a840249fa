package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics counts requests by matched route.  Unmatched paths are reported
// as "unmatched".
func Metrics(m *prometheus.FeaturizeMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
