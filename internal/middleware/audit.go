package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/pkg/response"
)

// Audit logs an audit entry after every successful write. Failed requests,
// including in-band business failures, are skipped.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("audit")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Writer.Status() >= 400 || c.GetBool(response.FailedContextKey) {
			return
		}

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.GetHeader("User-Agent")),
		}
		if claims := ClaimsFromContext(c); claims != nil {
			fields = append(fields,
				zap.String("role", string(claims.Role)),
				zap.String("subject", claims.UserID.String()),
			)
		}
		logger.Info("audit", fields...)
	}
}
