package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/errors"
	"github.com/codearena/arena_controller/pkg/executor"
	"github.com/codearena/arena_controller/pkg/logger"
	"gorm.io/gorm"
)

type SubmissionService interface {
	// SubmitCode 提交代码并同步判题, 返回判题后的提交记录
	SubmitCode(ctx context.Context, param *model.SubmitCodeParam) (*model.SubmissionResponse, error)
	// GetSubmission 获取提交记录
	GetSubmission(ctx context.Context, submissionID uint64) (*model.Submission, error)
	// GetUserSubmissions 获取用户提交记录, 按提交时间倒序
	GetUserSubmissions(ctx context.Context, userID string) ([]model.SubmissionResponse, error)
}

type SubmissionServiceImpl struct {
	db       *gorm.DB
	executor executor.Client
	roomSvc  RoomService
	log      logger.Logger
}

var _ SubmissionService = (*SubmissionServiceImpl)(nil)

func NewSubmissionService(db *gorm.DB, executorClient executor.Client, roomSvc RoomService, log logger.Logger) SubmissionService {
	return &SubmissionServiceImpl{
		db:       db,
		executor: executorClient,
		roomSvc:  roomSvc,
		log:      log,
	}
}

// judgeOutcome 判题循环的聚合结果
type judgeOutcome struct {
	status        model.SubmissionStatus
	errorMessage  string
	passed        int
	executionTime int // 单位: 毫秒, 取最慢用例
	memoryUsed    int // 单位: KB, 取峰值用例
}

// SubmitCode 提交代码并同步判题, 返回判题后的提交记录
func (s *SubmissionServiceImpl) SubmitCode(ctx context.Context, param *model.SubmitCodeParam) (*model.SubmissionResponse, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", param.Operator).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.UserNotFound)
		}
		return nil, fmt.Errorf("SubmitCode failed at find user: %w", err)
	}

	var problem model.Problem
	err = s.db.WithContext(ctx).
		Preload("TestCases", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("id = ?", param.ProblemID).
		First(&problem).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ProblemNotFound)
		}
		return nil, fmt.Errorf("SubmitCode failed at find problem: %w", err)
	}

	submission := model.Submission{
		UserID:         param.Operator,
		ProblemID:      param.ProblemID,
		Code:           param.Code,
		Language:       param.Language,
		Status:         model.SubmissionStatusPending,
		TotalTestCases: len(problem.TestCases),
	}
	if err = s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("SubmitCode failed at create submission: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", submission.ID).
		Update("status", model.SubmissionStatusRunning).Error
	if err != nil {
		return nil, fmt.Errorf("SubmitCode failed at update submission status: %w", err)
	}

	outcome := s.runTestCases(ctx, &problem, param.Code, param.Language)

	// 通过与否在更新本次提交之前判定, 保证首次通过检测不把自己算进去
	firstSolve := false
	if outcome.status == model.SubmissionStatusAccepted {
		firstSolve, err = s.isFirstSolve(ctx, param.Operator, param.ProblemID)
		if err != nil {
			return nil, err
		}
	}

	submission.Status = outcome.status
	submission.ErrorMessage = outcome.errorMessage
	submission.TestCasesPassed = outcome.passed
	submission.ExecutionTime = outcome.executionTime
	submission.MemoryUsed = outcome.memoryUsed
	err = s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", submission.ID).
		Updates(map[string]any{
			"status":            outcome.status,
			"error_message":     outcome.errorMessage,
			"test_cases_passed": outcome.passed,
			"execution_time":    outcome.executionTime,
			"memory_used":       outcome.memoryUsed,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("SubmitCode failed at update submission result: %w", err)
	}

	if err = s.updateProblemCounters(ctx, &problem, outcome.status); err != nil {
		return nil, err
	}

	if outcome.status == model.SubmissionStatusAccepted {
		if firstSolve {
			if err = s.awardFirstSolve(ctx, param.Operator, problem.Difficulty, outcome.executionTime); err != nil {
				return nil, err
			}
		}
		s.completeActiveRoom(ctx, param.Operator, param.ProblemID)
	}

	resp := model.NewSubmissionResponse(&submission)
	return &resp, nil
}

// runTestCases 按固定顺序逐个执行测试用例, 失败立即终止
func (s *SubmissionServiceImpl) runTestCases(ctx context.Context, problem *model.Problem, code, language string) judgeOutcome {
	outcome := judgeOutcome{
		status: model.SubmissionStatusAccepted,
	}

	for i, tc := range problem.TestCases {
		result, err := s.executor.Execute(ctx, &executor.ExecuteRequest{
			Code:     code,
			Language: language,
			Stdin:    tc.Input,
		})
		if err != nil {
			// 执行服务不可达或调用超时, 判为运行时错误
			s.log.ErrorContext(ctx, "runTestCases execute failed",
				logger.Uint64("problem_id", problem.ID),
				logger.Int("test_case", i),
				logger.Error(err))
			outcome.status = model.SubmissionStatusRuntimeError
			outcome.errorMessage = err.Error()
			return outcome
		}

		if result.ExecutionTimeMs > outcome.executionTime {
			outcome.executionTime = result.ExecutionTimeMs
		}
		if result.MemoryUsedKb > outcome.memoryUsed {
			outcome.memoryUsed = result.MemoryUsedKb
		}

		if result.Status != "" && result.Status != model.SubmissionStatusAccepted {
			outcome.status = result.Status
			outcome.errorMessage = result.Stderr
			return outcome
		}
		if result.ExitCode != 0 {
			outcome.status = model.SubmissionStatusRuntimeError
			outcome.errorMessage = result.Stderr
			return outcome
		}

		actual := normalizeOutput(result.Stdout)
		expected := normalizeOutput(tc.ExpectedOutput)
		if actual != expected {
			outcome.status = model.SubmissionStatusWrongAnswer
			outcome.errorMessage = fmt.Sprintf("test case %d failed: expected %q, got %q", i+1, expected, actual)
			return outcome
		}

		outcome.passed++
	}
	return outcome
}

// normalizeOutput 归一化输出: 统一换行符, 去掉首尾空白, 再去掉每行首尾空白
func normalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}

// isFirstSolve 判断是否为该用户对该题的首次通过, 需在本次提交写入通过状态前调用
func (s *SubmissionServiceImpl) isFirstSolve(ctx context.Context, userID string, problemID uint64) (bool, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("user_id = ? AND problem_id = ? AND status = ?", userID, problemID, model.SubmissionStatusAccepted).
		Count(&cnt).Error
	if err != nil {
		return false, fmt.Errorf("isFirstSolve failed at count submissions: %w", err)
	}
	return cnt == 0, nil
}

// updateProblemCounters 更新题目统计, 总提交数恒加一, 通过数仅在通过时加一
func (s *SubmissionServiceImpl) updateProblemCounters(ctx context.Context, problem *model.Problem, status model.SubmissionStatus) error {
	updates := map[string]any{
		"total_submissions": gorm.Expr("total_submissions + 1"),
	}
	if status == model.SubmissionStatusAccepted {
		updates["accepted_submissions"] = gorm.Expr("accepted_submissions + 1")
	}
	err := s.db.WithContext(ctx).Model(&model.Problem{}).
		Where("id = ?", problem.ID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("updateProblemCounters failed at update problem: %w", err)
	}
	return nil
}

// awardFirstSolve 首次通过加分并累计解题数
func (s *SubmissionServiceImpl) awardFirstSolve(ctx context.Context, userID string, difficulty model.ProblemDifficulty, executionTimeMs int) error {
	delta := RatingDelta(difficulty, executionTimeMs)
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"rating":          gorm.Expr("rating + ?", delta),
			"problems_solved": gorm.Expr("problems_solved + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("awardFirstSolve failed at update user: %w", err)
	}
	return nil
}

// completeActiveRoom 通过后尝试完成用户所在且绑定该题的进行中房间, 首个通过者即胜者
// 完成失败只记录, 不影响已落库的判题结果
func (s *SubmissionServiceImpl) completeActiveRoom(ctx context.Context, userID string, problemID uint64) {
	room, err := s.roomSvc.FindActiveRoomForProblem(ctx, userID, problemID)
	if err != nil {
		s.log.ErrorContext(ctx, "completeActiveRoom failed at find room", logger.Error(err))
		return
	}
	if room == nil {
		return
	}
	if err = s.roomSvc.CompleteRoom(ctx, room.ID, userID); err != nil {
		s.log.ErrorContext(ctx, "completeActiveRoom failed at complete room",
			logger.String("room_id", room.ID),
			logger.Error(err))
	}
}

// GetSubmission 获取提交记录
func (s *SubmissionServiceImpl) GetSubmission(ctx context.Context, submissionID uint64) (*model.Submission, error) {
	var submission model.Submission
	err := s.db.WithContext(ctx).Where("id = ?", submissionID).First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.SubmissionNotFound)
		}
		return nil, fmt.Errorf("GetSubmission failed at find submission: %w", err)
	}
	return &submission, nil
}

// GetUserSubmissions 获取用户提交记录, 按提交时间倒序
func (s *SubmissionServiceImpl) GetUserSubmissions(ctx context.Context, userID string) ([]model.SubmissionResponse, error) {
	var submissions []model.Submission
	err := s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("GetUserSubmissions failed at find submissions: %w", err)
	}

	list := make([]model.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		list = append(list, model.NewSubmissionResponse(&submissions[i]))
	}
	return list, nil
}
