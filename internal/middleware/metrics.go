package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"imagedrop/api/internal/metrics"
)

func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		collector.RecordRequest(c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
