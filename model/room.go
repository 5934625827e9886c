package model

import "time"

type RoomMode string

const (
	RoomModeSingle RoomMode = "single" // 创建时指定题目
	RoomModeRandom RoomMode = "random" // 开始时随机抽题
)

type RoomVisibility string

const (
	RoomVisibilityPublic  RoomVisibility = "public"
	RoomVisibilityPrivate RoomVisibility = "private"
)

type RoomStatus string

// 房间状态只允许单向流转: waiting -> active -> completed
const (
	RoomStatusWaiting   RoomStatus = "waiting"
	RoomStatusActive    RoomStatus = "active"
	RoomStatusCompleted RoomStatus = "completed"
)

type Room struct {
	ID              string            `gorm:"primaryKey;size:6" json:"id"`
	CreatedBy       string            `gorm:"size:64;not null;index" json:"created_by"`
	ProblemID       *uint64           `json:"problem_id"`
	Mode            RoomMode          `gorm:"size:20;not null" json:"mode"`
	MaxParticipants int               `gorm:"not null;default:4" json:"max_participants"`
	Visibility      RoomVisibility    `gorm:"size:20;not null;default:public" json:"visibility"`
	Status          RoomStatus        `gorm:"size:20;not null;index" json:"status"`
	WinnerID        *string           `gorm:"size:64" json:"winner_id,omitempty"`
	StartedAt       *time.Time        `json:"started_at,omitempty"`
	EmptySince      *time.Time        `json:"-"`
	CreatedAt       time.Time         `json:"created_at"`
	Participants    []RoomParticipant `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}

type RoomParticipant struct {
	ID       uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID   string     `gorm:"size:6;not null;index:idx_room_user" json:"room_id"`
	UserID   string     `gorm:"size:64;not null;index:idx_room_user" json:"user_id"`
	Username string     `gorm:"size:50;not null" json:"username"`
	IsReady  bool       `gorm:"not null;default:false" json:"is_ready"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
}

func (RoomParticipant) TableName() string {
	return "room_participants"
}

// HasLeft 参与者是否已离开房间
func (p *RoomParticipant) HasLeft() bool {
	return p.LeftAt != nil
}

type CreateRoomParam struct {
	CommonParam `json:"-"`

	Mode            RoomMode       `json:"mode" binding:"required,oneof=single random"`       // 选题模式
	ProblemID       *uint64        `json:"problem_id"`                                        // single 模式必填
	MaxParticipants int            `json:"max_participants" binding:"omitempty,min=1,max=16"` // 最大人数, 默认 4
	Visibility      RoomVisibility `json:"visibility" binding:"omitempty,oneof=public private"`
}

type RandomJoinParam struct {
	CommonParam `json:"-"`

	Mode            RoomMode `json:"mode" binding:"omitempty,oneof=single random"` // 未匹配到房间时用于兜底建房
	ProblemID       *uint64  `json:"problem_id"`
	MaxParticipants int      `json:"max_participants" binding:"omitempty,min=1,max=16"`
}

type RoomIDParam struct {
	CommonParam `json:"-"`

	RoomID string `uri:"room_id" binding:"required,len=6"` // 房间号, 大小写不敏感
}

type UpdateReadyParam struct {
	CommonParam `json:"-"`

	RoomID  string `uri:"room_id" binding:"required,len=6"`
	IsReady *bool  `json:"is_ready" binding:"required"`
}

type RoomListParam struct {
	CommonParam `json:"-"`
}

type ExportRoomResultsParam struct {
	CommonParam `json:"-"`

	RoomID string `uri:"room_id" binding:"required,len=6"`
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"` // 导出格式, 默认 csv
}

type ParticipantResponse struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	IsReady  bool      `json:"is_ready"`
	JoinedAt time.Time `json:"joined_at"`
}

type RoomResponse struct {
	ID              string                `json:"id"`
	CreatedBy       string                `json:"created_by"`
	ProblemID       *uint64               `json:"problem_id"`
	Mode            RoomMode              `json:"mode"`
	MaxParticipants int                   `json:"max_participants"`
	Visibility      RoomVisibility        `json:"visibility"`
	Status          RoomStatus            `json:"status"`
	WinnerID        *string               `json:"winner_id,omitempty"`
	StartedAt       *time.Time            `json:"started_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	Participants    []ParticipantResponse `json:"participants"`
}

// NewRoomResponse 构造房间响应, 仅包含未离开的参与者, 按加入时间排序
func NewRoomResponse(room *Room) RoomResponse {
	participants := make([]ParticipantResponse, 0, len(room.Participants))
	for _, p := range room.Participants {
		if p.HasLeft() {
			continue
		}
		participants = append(participants, ParticipantResponse{
			UserID:   p.UserID,
			Username: p.Username,
			IsReady:  p.IsReady,
			JoinedAt: p.JoinedAt,
		})
	}
	return RoomResponse{
		ID:              room.ID,
		CreatedBy:       room.CreatedBy,
		ProblemID:       room.ProblemID,
		Mode:            room.Mode,
		MaxParticipants: room.MaxParticipants,
		Visibility:      room.Visibility,
		Status:          room.Status,
		WinnerID:        room.WinnerID,
		StartedAt:       room.StartedAt,
		CreatedAt:       room.CreatedAt,
		Participants:    participants,
	}
}
