package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/petsuhq/petsu-backend/internal/metrics"
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
