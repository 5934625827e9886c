package ioc

import (
	"log"
	"os"
	"time"

	"github.com/codearena/arena_controller/config"
	"github.com/codearena/arena_controller/pkg/gintool"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/web"
	"github.com/codearena/arena_controller/web/jwt"
	"github.com/codearena/arena_controller/web/middleware"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

func InitGinServer(l logger.Logger, jwtHandler jwt.Handler, roomHandler *web.RoomHandler, submissionHandler *web.SubmissionHandler, problemHandler *web.ProblemHandler, healthHandler *web.HealthHandler) *web.GinServer {
	var cfg config.GinConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal gin config failed, err: %v", err)
	}

	// 优先使用环境变量中设置的服务端口
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	corsBuilder := middleware.NewCORSMiddlewareBuilder(
		cfg.AllowOrigins,
		cfg.AllowMethods,
		cfg.AllowHeaders,
		cfg.ExposeHeaders,
		cfg.AllowCredentials,
		time.Duration(cfg.MaxAge)*time.Second)
	jwtBuilder := middleware.NewJWTMiddlewareBuilder(jwtHandler, l, cfg.CheckLoginPath)

	engine := gin.Default()
	engine.Use(
		gintool.RequestIDMiddleware(),
		corsBuilder.Build(),
		jwtBuilder.CheckLogin(),
		gintool.ContextMiddleware(),
	)

	pprof.Register(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	roomHandler.Register(engine)
	submissionHandler.Register(engine)
	problemHandler.Register(engine)
	healthHandler.Register(engine)

	return &web.GinServer{
		Engine: engine,
		Addr:   cfg.Addr,
	}
}
