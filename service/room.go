package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/codearena/arena_controller/event"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/errors"
	"github.com/codearena/arena_controller/pkg/logger"
	"gorm.io/gorm"
)

const (
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomIDLength   = 6
	roomIDRetries  = 10

	defaultMaxParticipants = 4
)

// 活跃参与者计数子查询, 房间容量与匹配排序共用
const activeCountExpr = "(SELECT COUNT(*) FROM room_participants rp WHERE rp.room_id = rooms.id AND rp.left_at IS NULL)"

type RoomService interface {
	// CreateRoom 创建房间, 创建者自动成为第一位参与者
	CreateRoom(ctx context.Context, param *model.CreateRoomParam) (*model.RoomResponse, error)
	// RandomJoin 快速加入, 优先填充人数最少的待开始公开房间, 无可用房间时兜底建房
	RandomJoin(ctx context.Context, param *model.RandomJoinParam) (*model.RoomResponse, error)
	// JoinRoom 加入房间, 已在房间内时幂等返回当前状态
	JoinRoom(ctx context.Context, param *model.RoomIDParam) (*model.RoomResponse, error)
	// LeaveRoom 离开房间, 最后一位离开时为房间打上空置时间戳
	LeaveRoom(ctx context.Context, param *model.RoomIDParam) error
	// UpdateReady 更新准备状态
	UpdateReady(ctx context.Context, param *model.UpdateReadyParam) error
	// StartRoom 开始对局, 仅房主可操作, random 模式在此时随机绑定题目
	StartRoom(ctx context.Context, param *model.RoomIDParam) (*model.RoomResponse, error)
	// CompleteRoom 完成对局并记录胜者, 已完成时幂等返回
	CompleteRoom(ctx context.Context, roomID, winnerID string) error
	// DeleteRoom 删除房间及其全部参与者, 仅房主可操作
	DeleteRoom(ctx context.Context, param *model.RoomIDParam) error
	// GetRoomDetails 获取房间详情
	GetRoomDetails(ctx context.Context, roomID string) (*model.RoomResponse, error)
	// ListUserRooms 获取用户当前所在的房间, 按加入时间倒序
	ListUserRooms(ctx context.Context, userID string) ([]model.RoomResponse, error)
	// ListPublicRooms 获取未结束的公开房间, 按创建时间倒序
	ListPublicRooms(ctx context.Context) ([]model.RoomResponse, error)
	// FindActiveRoomForProblem 查找用户所在且绑定指定题目的进行中房间
	FindActiveRoomForProblem(ctx context.Context, userID string, problemID uint64) (*model.Room, error)
	// CleanupStaleRooms 删除超时对局与长期空置的房间, 返回各原因的删除数
	CleanupStaleRooms(ctx context.Context, activeBefore, emptyBefore time.Time) (overlong, longEmpty int, err error)
}

type RoomServiceImpl struct {
	db    *gorm.DB
	kafka event.Producer
	log   logger.Logger
}

var _ RoomService = (*RoomServiceImpl)(nil)

func NewRoomService(db *gorm.DB, kafka event.Producer, log logger.Logger) RoomService {
	return &RoomServiceImpl{
		db:    db,
		kafka: kafka,
		log:   log,
	}
}

func randomRoomID() string {
	var sb strings.Builder
	sb.Grow(roomIDLength)
	for i := 0; i < roomIDLength; i++ {
		sb.WriteByte(roomIDAlphabet[rand.IntN(len(roomIDAlphabet))])
	}
	return sb.String()
}

// generateRoomID 生成房间号, 撞号时重试
func (s *RoomServiceImpl) generateRoomID(tx *gorm.DB) (string, error) {
	for i := 0; i < roomIDRetries; i++ {
		id := randomRoomID()
		var cnt int64
		if err := tx.Model(&model.Room{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return "", fmt.Errorf("generateRoomID failed at count rooms: %w", err)
		}
		if cnt == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generateRoomID failed: no unique id after %d retries", roomIDRetries)
}

// CreateRoom 创建房间, 创建者自动成为第一位参与者
func (s *RoomServiceImpl) CreateRoom(ctx context.Context, param *model.CreateRoomParam) (*model.RoomResponse, error) {
	if param.Mode == model.RoomModeSingle && param.ProblemID == nil {
		return nil, errors.New(errors.MissingProblemSelection)
	}

	maxParticipants := param.MaxParticipants
	if maxParticipants < 1 {
		maxParticipants = defaultMaxParticipants
	}
	visibility := param.Visibility
	if visibility == "" {
		visibility = model.RoomVisibilityPublic
	}

	tx := s.db.WithContext(ctx).Begin()

	roomID, err := s.generateRoomID(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	room := model.Room{
		ID:              roomID,
		CreatedBy:       param.Operator,
		ProblemID:       param.ProblemID,
		Mode:            param.Mode,
		MaxParticipants: maxParticipants,
		Visibility:      visibility,
		Status:          model.RoomStatusWaiting,
		CreatedAt:       now,
	}
	if room.Mode == model.RoomModeRandom {
		room.ProblemID = nil
	}
	if err = tx.Create(&room).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("CreateRoom transaction failed at insert into rooms: %w", err)
	}

	participant := model.RoomParticipant{
		RoomID:   roomID,
		UserID:   param.Operator,
		Username: param.OperatorName,
		JoinedAt: now,
	}
	if err = tx.Create(&participant).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("CreateRoom transaction failed at insert into room_participants: %w", err)
	}

	if err = tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("CreateRoom transaction failed at commit: %w", err)
	}

	return s.GetRoomDetails(ctx, roomID)
}

// JoinRoom 加入房间, 已在房间内时幂等返回当前状态
func (s *RoomServiceImpl) JoinRoom(ctx context.Context, param *model.RoomIDParam) (*model.RoomResponse, error) {
	roomID := strings.ToUpper(param.RoomID)
	if err := s.joinRoom(ctx, roomID, param.Operator, param.OperatorName); err != nil {
		return nil, err
	}
	return s.GetRoomDetails(ctx, roomID)
}

func (s *RoomServiceImpl) joinRoom(ctx context.Context, roomID, userID, username string) error {
	tx := s.db.WithContext(ctx).Begin()

	var room model.Room
	err := tx.Where("id = ?", roomID).First(&room).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.RoomNotFound)
		}
		return fmt.Errorf("joinRoom transaction failed at find room: %w", err)
	}
	if room.Status == model.RoomStatusCompleted {
		tx.Rollback()
		return errors.New(errors.RoomNotJoinable)
	}

	// 已持有活跃参与记录时幂等返回, 不插入重复行
	var cnt int64
	err = tx.Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ? AND left_at IS NULL", roomID, userID).
		Count(&cnt).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("joinRoom transaction failed at count participant: %w", err)
	}
	if cnt > 0 {
		tx.Rollback()
		return nil
	}

	// 容量检查与插入在同一条语句内完成, 并发加入不会超员, 同一用户也不会产生重复活跃记录
	res := tx.Exec(`INSERT INTO room_participants (room_id, user_id, username, is_ready, joined_at)
		SELECT rooms.id, ?, ?, ?, ? FROM rooms
		WHERE rooms.id = ?
		AND `+activeCountExpr+` < rooms.max_participants
		AND NOT EXISTS (SELECT 1 FROM room_participants rp2 WHERE rp2.room_id = rooms.id AND rp2.user_id = ? AND rp2.left_at IS NULL)`,
		userID, username, false, time.Now(), roomID, userID)
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("joinRoom transaction failed at insert into room_participants: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		// 并发下可能是自己刚刚加入成功, 复查后再判定满员
		err = s.db.WithContext(ctx).Model(&model.RoomParticipant{}).
			Where("room_id = ? AND user_id = ? AND left_at IS NULL", roomID, userID).
			Count(&cnt).Error
		if err != nil {
			return fmt.Errorf("joinRoom failed at recheck participant: %w", err)
		}
		if cnt > 0 {
			return nil
		}
		return errors.New(errors.RoomFull)
	}

	// 房间不再空置, 清掉空置标记
	err = tx.Model(&model.Room{}).
		Where("id = ? AND empty_since IS NOT NULL", roomID).
		Update("empty_since", nil).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("joinRoom transaction failed at clear empty_since: %w", err)
	}

	if err = tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("joinRoom transaction failed at commit: %w", err)
	}
	return nil
}

// RandomJoin 快速加入, 优先填充人数最少的待开始公开房间, 无可用房间时兜底建房
func (s *RoomServiceImpl) RandomJoin(ctx context.Context, param *model.RandomJoinParam) (*model.RoomResponse, error) {
	var candidates []model.Room
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("visibility = ? AND status = ?", model.RoomVisibilityPublic, model.RoomStatusWaiting).
		Where(activeCountExpr + " < rooms.max_participants").
		Order(activeCountExpr + " ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("RandomJoin failed at find candidate rooms: %w", err)
	}

	for _, candidate := range candidates {
		if err = s.joinRoom(ctx, candidate.ID, param.Operator, param.OperatorName); err != nil {
			// 候选房间可能刚被他人占满或删除, 继续尝试下一个
			s.log.WarnContext(ctx, "RandomJoin candidate room join failed",
				logger.String("room_id", candidate.ID),
				logger.Error(err))
			continue
		}
		return s.GetRoomDetails(ctx, candidate.ID)
	}

	mode := param.Mode
	if mode == "" {
		mode = model.RoomModeRandom
	}
	return s.CreateRoom(ctx, &model.CreateRoomParam{
		CommonParam:     param.CommonParam,
		Mode:            mode,
		ProblemID:       param.ProblemID,
		MaxParticipants: param.MaxParticipants,
		Visibility:      model.RoomVisibilityPublic,
	})
}

// LeaveRoom 离开房间, 最后一位离开时为房间打上空置时间戳
func (s *RoomServiceImpl) LeaveRoom(ctx context.Context, param *model.RoomIDParam) error {
	roomID := strings.ToUpper(param.RoomID)

	tx := s.db.WithContext(ctx).Begin()

	res := tx.Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ? AND left_at IS NULL", roomID, param.Operator).
		Update("left_at", time.Now())
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("LeaveRoom transaction failed at update room_participants: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return errors.New(errors.ParticipantNotFound)
	}

	var cnt int64
	err := tx.Model(&model.RoomParticipant{}).
		Where("room_id = ? AND left_at IS NULL", roomID).
		Count(&cnt).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("LeaveRoom transaction failed at count participants: %w", err)
	}
	if cnt == 0 {
		err = tx.Model(&model.Room{}).
			Where("id = ?", roomID).
			Update("empty_since", time.Now()).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("LeaveRoom transaction failed at set empty_since: %w", err)
		}
	}

	if err = tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("LeaveRoom transaction failed at commit: %w", err)
	}
	return nil
}

// UpdateReady 更新准备状态
func (s *RoomServiceImpl) UpdateReady(ctx context.Context, param *model.UpdateReadyParam) error {
	roomID := strings.ToUpper(param.RoomID)

	res := s.db.WithContext(ctx).Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ? AND left_at IS NULL", roomID, param.Operator).
		Update("is_ready", *param.IsReady)
	if res.Error != nil {
		return fmt.Errorf("UpdateReady failed at update room_participants: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.ParticipantNotFound)
	}
	return nil
}

// StartRoom 开始对局, 仅房主可操作, random 模式在此时随机绑定题目
func (s *RoomServiceImpl) StartRoom(ctx context.Context, param *model.RoomIDParam) (*model.RoomResponse, error) {
	roomID := strings.ToUpper(param.RoomID)

	var room model.Room
	err := s.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.RoomNotFound)
		}
		return nil, fmt.Errorf("StartRoom failed at find room: %w", err)
	}
	if room.CreatedBy != param.Operator {
		return nil, errors.New(errors.NotRoomCreator)
	}

	problemID := room.ProblemID
	if room.Mode == model.RoomModeRandom {
		ids, err := s.listProblemIDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, errors.New(errors.NoProblemsAvailable)
		}
		picked := ids[rand.IntN(len(ids))]
		problemID = &picked
	}
	if problemID == nil {
		return nil, errors.New(errors.MissingProblemSelection)
	}

	// 条件更新保证状态只从 waiting 前进一次
	res := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND status = ?", roomID, model.RoomStatusWaiting).
		Updates(map[string]any{
			"status":     model.RoomStatusActive,
			"problem_id": *problemID,
			"started_at": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("StartRoom failed at update room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.New(errors.RoomNotWaiting)
	}

	return s.GetRoomDetails(ctx, roomID)
}

func (s *RoomServiceImpl) listProblemIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Problem{}).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listProblemIDs failed at pluck id: %w", err)
	}
	return ids, nil
}

// CompleteRoom 完成对局并记录胜者, 已完成时幂等返回
func (s *RoomServiceImpl) CompleteRoom(ctx context.Context, roomID, winnerID string) error {
	roomID = strings.ToUpper(roomID)

	var room model.Room
	err := s.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.RoomNotFound)
		}
		return fmt.Errorf("CompleteRoom failed at find room: %w", err)
	}

	res := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND status <> ?", roomID, model.RoomStatusCompleted).
		Updates(map[string]any{
			"status":    model.RoomStatusCompleted,
			"winner_id": winnerID,
		})
	if res.Error != nil {
		return fmt.Errorf("CompleteRoom failed at update room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// 已被先到者完成, 幂等返回
		return nil
	}

	s.notifyRoomCompleted(ctx, roomID, winnerID)
	return nil
}

// notifyRoomCompleted 向订阅方广播房间完成事件, 尽力送达, 失败只记录
func (s *RoomServiceImpl) notifyRoomCompleted(ctx context.Context, roomID, winnerID string) {
	if s.kafka == nil {
		return
	}
	msg := event.RoomCompletedMessage{
		RoomID:   roomID,
		Status:   string(model.RoomStatusCompleted),
		WinnerID: winnerID,
	}
	val, err := msg.Marshal()
	if err != nil {
		s.log.WarnContext(ctx, "notifyRoomCompleted failed at marshal message", logger.Error(err))
		return
	}
	_, _, err = s.kafka.Produce(ctx, &sarama.ProducerMessage{
		Topic: event.RoomCompletedTopic,
		Value: sarama.ByteEncoder(val),
	})
	if err != nil {
		s.log.WarnContext(ctx, "notifyRoomCompleted failed at produce message",
			logger.String("room_id", roomID),
			logger.Error(err))
	}
}

// DeleteRoom 删除房间及其全部参与者, 仅房主可操作
func (s *RoomServiceImpl) DeleteRoom(ctx context.Context, param *model.RoomIDParam) error {
	roomID := strings.ToUpper(param.RoomID)

	var room model.Room
	err := s.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.RoomNotFound)
		}
		return fmt.Errorf("DeleteRoom failed at find room: %w", err)
	}
	if room.CreatedBy != param.Operator {
		return errors.New(errors.NotRoomCreator)
	}

	return s.removeRoom(ctx, roomID)
}

// removeRoom 物理删除房间与参与记录, 房主删除与清扫任务共用
func (s *RoomServiceImpl) removeRoom(ctx context.Context, roomID string) error {
	tx := s.db.WithContext(ctx).Begin()

	err := tx.Where("room_id = ?", roomID).Delete(&model.RoomParticipant{}).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("removeRoom transaction failed at delete room_participants: %w", err)
	}
	err = tx.Where("id = ?", roomID).Delete(&model.Room{}).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("removeRoom transaction failed at delete room: %w", err)
	}

	if err = tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("removeRoom transaction failed at commit: %w", err)
	}
	return nil
}

// GetRoomDetails 获取房间详情
func (s *RoomServiceImpl) GetRoomDetails(ctx context.Context, roomID string) (*model.RoomResponse, error) {
	roomID = strings.ToUpper(roomID)

	var room model.Room
	err := s.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Where("id = ?", roomID).
		First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.RoomNotFound)
		}
		return nil, fmt.Errorf("GetRoomDetails failed at find room: %w", err)
	}
	resp := model.NewRoomResponse(&room)
	return &resp, nil
}

// ListUserRooms 获取用户当前所在的房间, 按加入时间倒序
func (s *RoomServiceImpl) ListUserRooms(ctx context.Context, userID string) ([]model.RoomResponse, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Joins("JOIN room_participants p ON p.room_id = rooms.id AND p.user_id = ? AND p.left_at IS NULL", userID).
		Order("p.joined_at desc").
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("ListUserRooms failed at find rooms: %w", err)
	}

	list := make([]model.RoomResponse, 0, len(rooms))
	for i := range rooms {
		list = append(list, model.NewRoomResponse(&rooms[i]))
	}
	return list, nil
}

// ListPublicRooms 获取未结束的公开房间, 按创建时间倒序
func (s *RoomServiceImpl) ListPublicRooms(ctx context.Context) ([]model.RoomResponse, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("visibility = ? AND status IN ?", model.RoomVisibilityPublic,
			[]model.RoomStatus{model.RoomStatusWaiting, model.RoomStatusActive}).
		Order("created_at desc").
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("ListPublicRooms failed at find rooms: %w", err)
	}

	list := make([]model.RoomResponse, 0, len(rooms))
	for i := range rooms {
		list = append(list, model.NewRoomResponse(&rooms[i]))
	}
	return list, nil
}

// CleanupStaleRooms 删除超时对局与长期空置的房间, 返回各原因的删除数
// 单个房间处理失败只记录, 不中断整轮清扫, 下一轮会重新命中
func (s *RoomServiceImpl) CleanupStaleRooms(ctx context.Context, activeBefore, emptyBefore time.Time) (int, int, error) {
	var overlongRooms []model.Room
	err := s.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", model.RoomStatusActive, activeBefore).
		Find(&overlongRooms).Error
	if err != nil {
		return 0, 0, fmt.Errorf("CleanupStaleRooms failed at find overlong rooms: %w", err)
	}

	overlong := 0
	for _, room := range overlongRooms {
		if err = s.removeRoom(ctx, room.ID); err != nil {
			s.log.ErrorContext(ctx, "CleanupStaleRooms remove overlong room failed",
				logger.String("room_id", room.ID),
				logger.Error(err))
			continue
		}
		overlong++
	}

	var emptyRooms []model.Room
	err = s.db.WithContext(ctx).
		Where("empty_since IS NOT NULL AND empty_since < ?", emptyBefore).
		Find(&emptyRooms).Error
	if err != nil {
		return overlong, 0, fmt.Errorf("CleanupStaleRooms failed at find empty rooms: %w", err)
	}

	longEmpty := 0
	for _, room := range emptyRooms {
		// 删除前复核空置状态, 标记可能因并发加入而过期
		var cnt int64
		err = s.db.WithContext(ctx).Model(&model.RoomParticipant{}).
			Where("room_id = ? AND left_at IS NULL", room.ID).
			Count(&cnt).Error
		if err != nil {
			s.log.ErrorContext(ctx, "CleanupStaleRooms count participants failed",
				logger.String("room_id", room.ID),
				logger.Error(err))
			continue
		}
		if cnt > 0 {
			err = s.db.WithContext(ctx).Model(&model.Room{}).
				Where("id = ?", room.ID).
				Update("empty_since", nil).Error
			if err != nil {
				s.log.ErrorContext(ctx, "CleanupStaleRooms clear stale marker failed",
					logger.String("room_id", room.ID),
					logger.Error(err))
			}
			continue
		}
		if err = s.removeRoom(ctx, room.ID); err != nil {
			s.log.ErrorContext(ctx, "CleanupStaleRooms remove empty room failed",
				logger.String("room_id", room.ID),
				logger.Error(err))
			continue
		}
		longEmpty++
	}

	return overlong, longEmpty, nil
}

// FindActiveRoomForProblem 查找用户所在且绑定指定题目的进行中房间
func (s *RoomServiceImpl) FindActiveRoomForProblem(ctx context.Context, userID string, problemID uint64) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Joins("JOIN room_participants p ON p.room_id = rooms.id AND p.user_id = ? AND p.left_at IS NULL", userID).
		Where("rooms.status = ? AND rooms.problem_id = ?", model.RoomStatusActive, problemID).
		Order("p.joined_at desc").
		First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("FindActiveRoomForProblem failed at find room: %w", err)
	}
	return &room, nil
}
