package cleaner

import (
	"context"
	"time"

	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service"
)

type RoomCleaner struct {
	roomSvc        service.RoomService
	log            logger.Logger
	activeDuration time.Duration // 对局最长持续时间
	emptyDuration  time.Duration // 空置房间保留时间
}

// NewRoomCleaner 创建新的房间清理器
func NewRoomCleaner(roomSvc service.RoomService, log logger.Logger, activeDuration, emptyDuration time.Duration) *RoomCleaner {
	return &RoomCleaner{
		roomSvc:        roomSvc,
		log:            log,
		activeDuration: activeDuration,
		emptyDuration:  emptyDuration,
	}
}

// RunCleanup 运行房间清理任务
func (c *RoomCleaner) RunCleanup(ctx context.Context) error {
	c.log.InfoContext(ctx, "Starting room cleanup job")

	now := time.Now()
	overlong, longEmpty, err := c.roomSvc.CleanupStaleRooms(ctx,
		now.Add(-c.activeDuration),
		now.Add(-c.emptyDuration))
	if err != nil {
		return err
	}

	c.log.InfoContext(ctx, "Room cleanup completed",
		logger.Int("overlong_removed", overlong),
		logger.Int("long_empty_removed", longEmpty),
	)
	return nil
}
