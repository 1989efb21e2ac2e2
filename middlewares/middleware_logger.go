package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/intranet-portal/utils"
)

// LoggerMiddleware writes one line per request. Server errors go to the
// error logger, the rest to the info logger.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if system := c.GetString("system"); system != "" {
			fields["system"] = system
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			utils.ErrorLogger.WithFields(fields).Error("request failed")
			return
		}
		utils.InfoLogger.WithFields(fields).Info("request")
	}
}
