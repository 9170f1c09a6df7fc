package yawebhook

import (
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/gin-gonic/gin"
)

// RequestLogger is a gin middleware logging one line per request through log.
// The request path is left out since it carries the bot token.
func RequestLogger(log yalogger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		c.Next()

		log.WithFields(map[string]any{
			"method":  c.Request.Method,
			"route":   c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(started).String(),
		}).Debug("Request served")
	}
}
