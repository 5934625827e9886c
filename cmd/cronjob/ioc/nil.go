package ioc

import (
	"github.com/codearena/arena_controller/event"
)

// InitNilKafka 清扫任务不投递事件, 房间服务对空生产者做了判空
func InitNilKafka() event.Producer {
	return nil
}
