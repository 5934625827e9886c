package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/codearena/arena_controller/constants"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// 已注销会话在 redis 中留痕, 命中即视为 token 失效
var ssidKey = "users:ssid:%s"

type RedisJWTHandler struct {
	client redis.Cmdable
	jwtKey []byte
}

func NewRedisJWTHandler(client redis.Cmdable, jwtKey []byte) Handler {
	return &RedisJWTHandler{
		client: client,
		jwtKey: jwtKey,
	}
}

var _ Handler = &RedisJWTHandler{}

func (h *RedisJWTHandler) CheckSession(ctx *gin.Context, ssid string) error {
	cnt, err := h.client.Exists(ctx, fmt.Sprintf(ssidKey, ssid)).Result()
	if err != nil {
		return err
	}
	if cnt > 0 {
		return errors.New("token invalid")
	}
	return nil
}

func (h *RedisJWTHandler) ExtractToken(ctx *gin.Context) string {
	// 优先从 X-Arena-JWT-Token Header 提取 token
	authCode := ctx.GetHeader(constants.HeaderLoginTokenKey)
	if authCode != "" {
		segs := strings.Split(authCode, " ")
		if len(segs) == 2 && segs[0] == "Bearer" {
			return segs[1]
		}
	}

	// 如果 Header 中没有, 尝试从 Cookie 中提取
	tokenFromCookie, err := ctx.Cookie(constants.HeaderLoginTokenKey)
	if err != nil || tokenFromCookie == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return ""
	}

	return tokenFromCookie
}

func (h *RedisJWTHandler) JwtKey() []byte {
	return h.jwtKey
}

func (h *RedisJWTHandler) GetUserClaims(ctx *gin.Context) (*ArenaUserClaims, error) {
	ucAny, exists := ctx.Get(constants.ContextUserClaimsKey)
	if !exists {
		return nil, fmt.Errorf("user claims not found in context")
	}
	uc, ok := ucAny.(ArenaUserClaims)
	if !ok {
		return nil, fmt.Errorf("user claims type assertion error")
	}
	return &uc, nil
}
