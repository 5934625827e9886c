package event

import json "github.com/bytedance/sonic"

const RoomCompletedTopic = "room_completed"

// RoomCompletedMessage 房间完成事件, 推送给实时订阅方, 尽力送达
type RoomCompletedMessage struct {
	RoomID   string `json:"room_id"`
	Status   string `json:"status"`
	WinnerID string `json:"winner_id"`
}

func (m *RoomCompletedMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
