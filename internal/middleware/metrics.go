package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"boardman-api/internal/metrics"
)

// Metrics returns a middleware that times every request and records it
// under the gin route pattern, so path parameters do not explode the
// label space. Operational endpoints are excluded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		m.RecordHTTPRequest(
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
