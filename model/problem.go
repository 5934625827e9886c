package model

import "time"

type ProblemDifficulty string

// 难度由低到高分为四档
const (
	DifficultyCakewalk ProblemDifficulty = "cakewalk"
	DifficultyEasy     ProblemDifficulty = "easy"
	DifficultyMedium   ProblemDifficulty = "medium"
	DifficultyHard     ProblemDifficulty = "hard"
)

type Problem struct {
	ID                  uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title               string            `gorm:"size:200;not null" json:"title"`
	Difficulty          ProblemDifficulty `gorm:"size:20;not null" json:"difficulty"`
	TotalSubmissions    int               `gorm:"not null;default:0" json:"total_submissions"`
	AcceptedSubmissions int               `gorm:"not null;default:0" json:"accepted_submissions"`
	CreatedAt           time.Time         `json:"created_at"`
	TestCases           []ProblemTestCase `gorm:"foreignKey:ProblemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Problem) TableName() string {
	return "problems"
}

// ProblemTestCase 测试用例, 按 position 顺序执行
type ProblemTestCase struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProblemID      uint64 `gorm:"not null;index" json:"problem_id"`
	Position       int    `gorm:"not null" json:"position"`
	Input          string `gorm:"type:text" json:"input"`
	ExpectedOutput string `gorm:"type:text" json:"expected_output"`
}

func (ProblemTestCase) TableName() string {
	return "problem_test_cases"
}

type GetProblemParam struct {
	CommonParam `json:"-"`

	ProblemID uint64 `uri:"problem_id" binding:"required"`
}

type GetProblemListParam struct {
	CommonParam `json:"-"`

	Difficulty *ProblemDifficulty `form:"difficulty" binding:"omitempty,oneof=cakewalk easy medium hard"`
	Page       int                `form:"page" binding:"omitempty,min=1"`
	PageSize   int                `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ProblemResponse struct {
	ID                  uint64            `json:"id"`
	Title               string            `json:"title"`
	Difficulty          ProblemDifficulty `json:"difficulty"`
	TotalSubmissions    int               `json:"total_submissions"`
	AcceptedSubmissions int               `json:"accepted_submissions"`
}

type GetProblemListResponse struct {
	Total int               `json:"total"`
	List  []ProblemResponse `json:"list"`
}
