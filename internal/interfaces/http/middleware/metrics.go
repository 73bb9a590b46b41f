package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/pkg/metrics"
)

// Metrics records request durations by route template
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		collector.ObserveRequest(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
