package jwt

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Handler 登录态校验, token 由账号服务签发, 本服务只做校验与会话检查
type Handler interface {
	ExtractToken(ctx *gin.Context) string
	CheckSession(ctx *gin.Context, ssid string) error

	JwtKey() []byte
	GetUserClaims(ctx *gin.Context) (*ArenaUserClaims, error)
}

type ArenaUserClaims struct {
	jwt.RegisteredClaims
	UserId    string
	Username  string
	Ssid      string
	UserAgent string
}
