package ioc

import (
	"log"

	"github.com/codearena/arena_controller/job"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service"
)

func InitScheduler(l logger.Logger, roomSvc service.RoomService) *job.CronScheduler {
	scheduler := job.NewCronScheduler(l)

	if err := scheduler.AddJob(InitRoomCleaner(roomSvc, l)); err != nil {
		log.Panicf("add room cleaner job fail, err: %v", err)
	}

	return scheduler
}
