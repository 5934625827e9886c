package middleware

import (
	"net/http"
	"strings"

	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/pkg/logger"
	arenajwt "github.com/codearena/arena_controller/web/jwt"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type JWTMiddlewareBuilder struct {
	arenajwt.Handler
	log            logger.Logger
	checkLoginPath []string
}

func NewJWTMiddlewareBuilder(handler arenajwt.Handler, log logger.Logger, checkLoginPath []string) *JWTMiddlewareBuilder {
	return &JWTMiddlewareBuilder{
		Handler:        handler,
		log:            log,
		checkLoginPath: checkLoginPath,
	}
}

// CheckLogin 校验登录态, 命中 checkLoginPath 前缀的请求必须携带有效 token
func (m *JWTMiddlewareBuilder) CheckLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		flag := false
		for _, p := range m.checkLoginPath {
			if strings.HasPrefix(path, p) {
				flag = true
				break
			}
		}
		if !flag {
			ctx.Next()
			return
		}

		var uc arenajwt.ArenaUserClaims
		token, err := jwt.ParseWithClaims(m.ExtractToken(ctx), &uc, func(t *jwt.Token) (any, error) {
			return m.JwtKey(), nil
		})
		if err != nil || token == nil || !token.Valid {
			m.log.ErrorContext(ctx, "CheckLogin failed",
				logger.Error(err),
				logger.Bool("token==nil", token == nil),
			)
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err = m.CheckSession(ctx, uc.Ssid); err != nil {
			m.log.ErrorContext(ctx, "CheckLogin failed", logger.Error(err))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set(constants.ContextUserClaimsKey, uc)
		ctx.Next()
	}
}
