package middleware

import (
	"strconv"

	"facility-booking/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests by method, route template and status.
// The template (c.FullPath) keeps the label cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
