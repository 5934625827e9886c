package ioc

import (
	"log"

	"github.com/codearena/arena_controller/config"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/spf13/viper"
)

func InitLogger() logger.Logger {
	var cfg config.LogConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal log config failed: %v", err)
	}

	l, err := logger.NewZapLogger(logger.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: cfg.Output,
	})
	if err != nil {
		log.Panicf("init logger failed: %v", err)
	}
	return l
}
