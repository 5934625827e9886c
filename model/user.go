package model

import "time"

// User 用户的竞技侧视图, 仅评分与解题数由判题流程维护
type User struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Username       string    `gorm:"size:50;not null" json:"username"`
	Rating         int       `gorm:"not null;default:0" json:"rating"`
	ProblemsSolved int       `gorm:"not null;default:0" json:"problems_solved"`
	CreatedAt      time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
