package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weatherchat/weatherchat/internal/server/handlers"
)

// MetricsMiddleware records per-route request counters and durations into
// the shared metrics store.
func MetricsMiddleware(metrics *handlers.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		key := c.Request.Method + " " + c.FullPath() + "_" + strconv.Itoa(c.Writer.Status())
		metrics.RequestFinished(key, time.Since(start).Seconds())
	}
}
