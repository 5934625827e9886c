//go:build wireinject

package main

import (
	cronioc "github.com/codearena/arena_controller/cmd/cronjob/ioc"
	commonioc "github.com/codearena/arena_controller/ioc"
	"github.com/codearena/arena_controller/job"
	"github.com/codearena/arena_controller/service"
	"github.com/google/wire"
)

func InitScheduler() *job.CronScheduler {
	wire.Build(
		commonioc.InitDB,
		commonioc.InitLogger,
		cronioc.InitNilKafka,
		service.NewRoomService,
		cronioc.InitScheduler,
	)
	return &job.CronScheduler{}
}
