package gintool

import (
	"context"

	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/gin-gonic/gin"
)

// GinContextToLoggerContext 将 Gin 上下文转换为 Logger 上下文
func GinContextToLoggerContext(c *gin.Context) context.Context {
	baseCtx := c.Request.Context()

	fields := make([]logger.Field, 0, 2)

	if requestID := c.GetHeader(constants.HeaderRequestIDKey); requestID != "" {
		fields = append(fields, logger.String("RequestID", requestID))
	}
	if userID := c.GetHeader(constants.HeaderUserIDKey); userID != "" {
		fields = append(fields, logger.String("UserID", userID))
	}

	return logger.ContextWithFields(baseCtx, fields...)
}
