package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/pkg/metrics"
)

// Metrics 请求计数与耗时统计
// route 使用路由模板（/patient/:id），未匹配的请求记为 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
