package model

import "time"

type SubmissionStatus string

const (
	SubmissionStatusPending             SubmissionStatus = "pending"
	SubmissionStatusRunning             SubmissionStatus = "running"
	SubmissionStatusAccepted            SubmissionStatus = "accepted"
	SubmissionStatusWrongAnswer         SubmissionStatus = "wrong_answer"
	SubmissionStatusTimeLimitExceeded   SubmissionStatus = "time_limit_exceeded"
	SubmissionStatusMemoryLimitExceeded SubmissionStatus = "memory_limit_exceeded"
	SubmissionStatusRuntimeError        SubmissionStatus = "runtime_error"
	SubmissionStatusCompilationError    SubmissionStatus = "compilation_error"
)

type Submission struct {
	ID              uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string           `gorm:"size:64;not null;index:idx_user_problem" json:"user_id"`
	ProblemID       uint64           `gorm:"not null;index:idx_user_problem" json:"problem_id"`
	Code            string           `gorm:"type:text;not null" json:"code"`
	Language        string           `gorm:"size:20;not null" json:"language"`
	Status          SubmissionStatus `gorm:"size:30;not null" json:"status"`
	ErrorMessage    string           `gorm:"type:text" json:"error_message,omitempty"`
	ExecutionTime   int              `json:"execution_time"` // 单位: 毫秒
	MemoryUsed      int              `json:"memory_used"`    // 单位: KB
	TestCasesPassed int              `json:"test_cases_passed"`
	TotalTestCases  int              `json:"total_test_cases"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

type SubmitCodeParam struct {
	CommonParam `json:"-"`

	ProblemID uint64 `json:"problem_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Language  string `json:"language" binding:"required,oneof=c cpp java python javascript go"`
}

type GetSubmissionParam struct {
	CommonParam `json:"-"`

	SubmissionID uint64 `uri:"submission_id" binding:"required"`
}

type SubmissionListParam struct {
	CommonParam `json:"-"`
}

type SubmissionResponse struct {
	ID              uint64           `json:"id"`
	UserID          string           `json:"user_id"`
	ProblemID       uint64           `json:"problem_id"`
	Language        string           `json:"language"`
	Status          SubmissionStatus `json:"status"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	ExecutionTime   int              `json:"execution_time"`
	MemoryUsed      int              `json:"memory_used"`
	TestCasesPassed int              `json:"test_cases_passed"`
	TotalTestCases  int              `json:"total_test_cases"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewSubmissionResponse 构造提交响应, 不回传提交代码
func NewSubmissionResponse(s *Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		ProblemID:       s.ProblemID,
		Language:        s.Language,
		Status:          s.Status,
		ErrorMessage:    s.ErrorMessage,
		ExecutionTime:   s.ExecutionTime,
		MemoryUsed:      s.MemoryUsed,
		TestCasesPassed: s.TestCasesPassed,
		TotalTestCases:  s.TotalTestCases,
		CreatedAt:       s.CreatedAt,
	}
}
