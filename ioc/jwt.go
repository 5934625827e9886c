package ioc

import (
	"log"

	"github.com/codearena/arena_controller/config"
	"github.com/codearena/arena_controller/web/jwt"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func InitJWTHandler(client redis.Cmdable) jwt.Handler {
	var cfg config.JWTConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal jwt config failed: %v", err)
	}

	return jwt.NewRedisJWTHandler(client, []byte(cfg.JWTKey))
}
