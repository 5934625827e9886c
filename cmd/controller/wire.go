//go:build wireinject

package main

import (
	ginioc "github.com/codearena/arena_controller/cmd/controller/ioc"
	commonioc "github.com/codearena/arena_controller/ioc"
	"github.com/codearena/arena_controller/service"
	"github.com/codearena/arena_controller/service/exporter/factory"
	"github.com/codearena/arena_controller/web"
	"github.com/google/wire"
)

func BuildDependency() *web.GinServer {
	wire.Build(
		commonioc.InitDB,
		commonioc.InitLogger,
		commonioc.InitRedis,
		commonioc.InitKafka,
		commonioc.InitJWTHandler,
		commonioc.InitExecutorClient,

		service.NewRoomService,
		service.NewProblemService,
		service.NewSubmissionService,
		factory.NewRoomResultExporterFactory,

		web.NewRoomHandler,
		web.NewSubmissionHandler,
		web.NewProblemHandler,
		web.NewHealthHandler,

		ginioc.InitGinServer,
	)
	return &web.GinServer{}
}
