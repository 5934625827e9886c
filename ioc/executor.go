package ioc

import (
	"log"
	"time"

	"github.com/codearena/arena_controller/config"
	"github.com/codearena/arena_controller/pkg/executor"
	"github.com/spf13/viper"
)

func InitExecutorClient() executor.Client {
	var cfg config.ExecutorConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal executor config failed: %v", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10000 // 默认 10 秒
	}

	return executor.NewHTTPClient(cfg.BaseURL, time.Duration(cfg.Timeout)*time.Millisecond)
}
