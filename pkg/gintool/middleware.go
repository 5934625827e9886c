package gintool

import (
	"github.com/codearena/arena_controller/constants"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware 请求标识中间件, 未携带 X-Request-ID 时生成一个, 并回写到响应头
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(constants.HeaderRequestIDKey, requestID)
		}
		c.Header(constants.HeaderRequestIDKey, requestID)
	}
}

// ContextMiddleware 上下文中间件
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(GinContextToLoggerContext(c))
	}
}
