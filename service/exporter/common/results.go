package common

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 对局结果: 房间内未离开的参与者, 连同其对房间绑定题目的提交统计
// 胜者优先, 其余按通过数与最短耗时排序
const roomResultSql = `
SELECT
    p.user_id AS user_id,
    p.username AS username,
    p.joined_at AS joined_at,
    CASE WHEN r.winner_id = p.user_id THEN 1 ELSE 0 END AS is_winner,
    COUNT(s.id) AS attempts,
    SUM(CASE WHEN s.status = 'accepted' THEN 1 ELSE 0 END) AS accepted_count,
    COALESCE(MIN(CASE WHEN s.status = 'accepted' THEN s.execution_time END), 0) AS best_time_ms
FROM room_participants p
JOIN rooms r ON r.id = p.room_id
LEFT JOIN submissions s
    ON s.user_id = p.user_id
    AND s.problem_id = r.problem_id
    AND s.created_at >= r.started_at
WHERE p.room_id = ? AND p.left_at IS NULL
GROUP BY p.user_id, p.username, p.joined_at, r.winner_id
ORDER BY is_winner DESC, accepted_count DESC, best_time_ms ASC, joined_at ASC
`

type RoomResult struct {
	UserID        string    `gorm:"user_id" json:"user_id"`
	Username      string    `gorm:"username" json:"username"`
	JoinedAt      time.Time `gorm:"joined_at" json:"joined_at"`
	IsWinner      bool      `gorm:"is_winner" json:"is_winner"`
	Attempts      int       `gorm:"attempts" json:"attempts"`
	AcceptedCount int       `gorm:"accepted_count" json:"accepted_count"`
	BestTimeMs    int       `gorm:"best_time_ms" json:"best_time_ms"`
}

// FetchRoomResults 从数据库中获取对局结果
func FetchRoomResults(db *gorm.DB, ctx context.Context, roomID string) ([]RoomResult, error) {
	var results []RoomResult
	err := db.WithContext(ctx).Raw(roomResultSql, roomID).Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("fetch room results failed: %w", err)
	}
	return results, nil
}
