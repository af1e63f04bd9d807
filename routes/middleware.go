package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/controllers"
	"github.com/listing-resolver/helpers/utils"
	"go.uber.org/zap"
)

// RequestID nhận X-Request-ID hợp lệ từ client hoặc sinh mới
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(utils.RequestIDHeader)
		if !utils.IsValidUUID(id) {
			id = utils.GenerateRequestID()
		}

		c.Set(controllers.RequestIDKey, id)
		c.Header(utils.RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog ghi log mỗi request bằng zap
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(controllers.RequestIDKey)),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
