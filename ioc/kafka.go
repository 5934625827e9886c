package ioc

import (
	"log"

	"github.com/codearena/arena_controller/config"
	"github.com/codearena/arena_controller/event"
	"github.com/spf13/viper"
)

func InitKafka() event.Producer {
	var cfg config.KafkaConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal kafka config failed: %v", err)
	}

	producer, err := event.NewSyncProducer(cfg.Brokers)
	if err != nil {
		log.Panicf("init kafka producer failed: %v", err)
	}
	return producer
}
