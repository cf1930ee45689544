package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// 요청마다 request_id가 붙은 하위 로거를 컨텍스트에 실어 보냄
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := base.With().Str("request_id", uuid.NewString()).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		ev := reqLogger.Info()
		if c.Writer.Status() >= 500 {
			ev = reqLogger.Error()
		}
		if user := c.GetString(UsernameKey); user != "" {
			ev = ev.Str("user", user)
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("RequestLogger(): request handled")
	}
}
