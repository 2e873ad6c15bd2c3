package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// RequestLogger logs one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		msg := message.Fields{
			"message":   "request",
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"route":     c.FullPath(),
			"status":    status,
			"duration":  time.Since(start).String(),
			"client_ip": c.ClientIP(),
			"size":      c.Writer.Size(),
		}
		switch {
		case status >= 500:
			grip.Error(msg)
		case status >= 400:
			grip.Warning(msg)
		default:
			grip.Info(msg)
		}
	}
}
