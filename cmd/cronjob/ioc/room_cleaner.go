package ioc

import (
	"log"
	"time"

	"github.com/codearena/arena_controller/cmd/cronjob/config"
	"github.com/codearena/arena_controller/job"
	"github.com/codearena/arena_controller/job/cleaner"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service"
	"github.com/spf13/viper"
)

func InitRoomCleaner(roomSvc service.RoomService, l logger.Logger) *job.JobConfig {
	var cfg config.RoomCleanerConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal room cleaner config fail, err: %v", err)
	}

	c := cleaner.NewRoomCleaner(roomSvc, l,
		time.Duration(cfg.ActiveDuration)*time.Minute,
		time.Duration(cfg.EmptyDuration)*time.Minute)
	jbCfg := &job.JobConfig{
		Name:        "过期房间清理",
		CronExpr:    cfg.CronExpr,
		JobFunc:     c.RunCleanup,
		Description: "清理超时对局与长期空置的房间",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
	return jbCfg
}
