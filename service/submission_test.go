package service

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/errors"
	"github.com/codearena/arena_controller/pkg/executor"
	"github.com/codearena/arena_controller/pkg/logger"
	"gorm.io/gorm"
)

// fakeExecutor 按调用顺序返回预置结果
type fakeExecutor struct {
	results []*executor.ExecuteResult
	err     error
	calls   int
}

func (f *fakeExecutor) Execute(_ context.Context, _ *executor.ExecuteRequest) (*executor.ExecuteResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.calls > len(f.results) {
		return &executor.ExecuteResult{}, nil
	}
	return f.results[f.calls-1], nil
}

func accepted(stdout string, timeMs int) *executor.ExecuteResult {
	return &executor.ExecuteResult{
		Status:          model.SubmissionStatusAccepted,
		Stdout:          stdout,
		ExecutionTimeMs: timeMs,
		MemoryUsedKb:    1024,
	}
}

func newSubmissionService(t *testing.T, exec executor.Client) (SubmissionService, RoomService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := logger.NewNopLogger()
	roomSvc := NewRoomService(db, nil, log)
	svc := NewSubmissionService(db, exec, roomSvc, log)
	return svc, roomSvc, db
}

func TestSubmitCodeAccepted(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		accepted("3", 12),
		accepted("7", 30),
	}}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "3", "7")

	got, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("u1", "alice"),
		ProblemID:   problemID,
		Code:        "print(input())",
		Language:    "python",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != model.SubmissionStatusAccepted {
		t.Fatalf("expected accepted, got %s: %s", got.Status, got.ErrorMessage)
	}
	if got.TestCasesPassed != 2 || got.TotalTestCases != 2 {
		t.Fatalf("expected 2/2 cases passed, got %d/%d", got.TestCasesPassed, got.TotalTestCases)
	}
	// 耗时取最慢用例, 内存取峰值用例
	if got.ExecutionTime != 30 {
		t.Fatalf("expected execution time 30, got %d", got.ExecutionTime)
	}
	if got.MemoryUsed != 1024 {
		t.Fatalf("expected memory used 1024, got %d", got.MemoryUsed)
	}
}

func TestSubmitCodeWrongAnswerShortCircuits(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		accepted("1", 5),
		accepted("999", 5),
	}}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "1", "2", "3", "4", "5")

	got, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("u1", "alice"),
		ProblemID:   problemID,
		Code:        "x",
		Language:    "go",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != model.SubmissionStatusWrongAnswer {
		t.Fatalf("expected wrong_answer, got %s", got.Status)
	}
	if got.TestCasesPassed != 1 || got.TotalTestCases != 5 {
		t.Fatalf("expected 1/5 cases passed, got %d/%d", got.TestCasesPassed, got.TotalTestCases)
	}
	// 第二个用例失败后立即终止, 不再执行后续用例
	if exec.calls != 2 {
		t.Fatalf("expected 2 executor calls, got %d", exec.calls)
	}
	if !strings.Contains(got.ErrorMessage, "test case 2 failed") {
		t.Fatalf("unexpected error message: %s", got.ErrorMessage)
	}
}

func TestSubmitCodeNormalizesOutput(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		accepted("5 \r\n6\r\n", 5),
	}}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "5\n6")

	got, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("u1", "alice"),
		ProblemID:   problemID,
		Code:        "x",
		Language:    "cpp",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != model.SubmissionStatusAccepted {
		t.Fatalf("expected accepted after normalization, got %s: %s", got.Status, got.ErrorMessage)
	}
}

func TestSubmitCodeExecutorStatusPassthrough(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		{
			Status:          model.SubmissionStatusTimeLimitExceeded,
			ExecutionTimeMs: 2000,
		},
	}}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "1", "2")

	got, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("u1", "alice"),
		ProblemID:   problemID,
		Code:        "x",
		Language:    "java",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != model.SubmissionStatusTimeLimitExceeded {
		t.Fatalf("expected time_limit_exceeded, got %s", got.Status)
	}
	if exec.calls != 1 {
		t.Fatalf("expected short circuit after 1 call, got %d", exec.calls)
	}
}

func TestSubmitCodeExecutorDownBecomesRuntimeError(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{err: stderrors.New("connection refused")}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "1")

	got, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("u1", "alice"),
		ProblemID:   problemID,
		Code:        "x",
		Language:    "go",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != model.SubmissionStatusRuntimeError {
		t.Fatalf("expected runtime_error, got %s", got.Status)
	}
	if got.ErrorMessage == "" {
		t.Fatal("expected error message recorded")
	}
}

func TestSubmitCodeUnknownUserOrProblem(t *testing.T) {
	t.Parallel()

	svc, _, db := newSubmissionService(t, &fakeExecutor{})
	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "1")

	_, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("ghost", "ghost"),
		ProblemID:   problemID,
		Code:        "x",
		Language:    "go",
	})
	if !errors.Is(err, errors.UserNotFound) {
		t.Fatalf("expected UserNotFound, got %v", err)
	}

	_, err = svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
		CommonParam: operator("u1", "alice"),
		ProblemID:   9999,
		Code:        "x",
		Language:    "go",
	})
	if !errors.Is(err, errors.ProblemNotFound) {
		t.Fatalf("expected ProblemNotFound, got %v", err)
	}
}

func TestSubmitCodeFirstSolveAwardsRatingOnce(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		accepted("1", 15),
		accepted("1", 15),
	}}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyMedium, "1")

	submit := func() {
		if _, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
			CommonParam: operator("u1", "alice"),
			ProblemID:   problemID,
			Code:        "x",
			Language:    "go",
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	submit()

	var user model.User
	if err := db.Where("id = ?", "u1").First(&user).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	// medium 基础分 40, 15ms 内通过拿满 20 奖励分
	if user.Rating != 60 {
		t.Fatalf("expected rating 60 after first solve, got %d", user.Rating)
	}
	if user.ProblemsSolved != 1 {
		t.Fatalf("expected 1 problem solved, got %d", user.ProblemsSolved)
	}

	// 重复通过同一题不再加分
	submit()
	if err := db.Where("id = ?", "u1").First(&user).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if user.Rating != 60 || user.ProblemsSolved != 1 {
		t.Fatalf("expected no further award, got rating %d solved %d", user.Rating, user.ProblemsSolved)
	}

	var problem model.Problem
	if err := db.Where("id = ?", problemID).First(&problem).Error; err != nil {
		t.Fatalf("load problem failed: %v", err)
	}
	if problem.TotalSubmissions != 2 || problem.AcceptedSubmissions != 2 {
		t.Fatalf("expected 2/2 problem counters, got %d/%d",
			problem.TotalSubmissions, problem.AcceptedSubmissions)
	}
}

func TestSubmitCodeCompletesActiveRoom(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		accepted("1", 5),
	}}
	svc, roomSvc, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	problemID := seedProblem(t, db, model.DifficultyEasy, "1")

	ctx := context.Background()
	room, err := roomSvc.CreateRoom(ctx, &model.CreateRoomParam{
		CommonParam: operator("u1", "alice"),
		Mode:        model.RoomModeSingle,
		ProblemID:   &problemID,
	})
	if err != nil {
		t.Fatalf("create room failed: %v", err)
	}
	if _, err = roomSvc.JoinRoom(ctx, &model.RoomIDParam{
		CommonParam: operator("u2", "bob"),
		RoomID:      room.ID,
	}); err != nil {
		t.Fatalf("join room failed: %v", err)
	}
	if _, err = roomSvc.StartRoom(ctx, &model.RoomIDParam{
		CommonParam: operator("u1", "alice"),
		RoomID:      room.ID,
	}); err != nil {
		t.Fatalf("start room failed: %v", err)
	}

	got, err := svc.SubmitCode(ctx, &model.SubmitCodeParam{
		CommonParam: operator("u2", "bob"),
		ProblemID:   problemID,
		Code:        "x",
		Language:    "go",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != model.SubmissionStatusAccepted {
		t.Fatalf("expected accepted, got %s", got.Status)
	}

	details, err := roomSvc.GetRoomDetails(ctx, room.ID)
	if err != nil {
		t.Fatalf("get room details failed: %v", err)
	}
	if details.Status != model.RoomStatusCompleted {
		t.Fatalf("expected completed room, got %s", details.Status)
	}
	if details.WinnerID == nil || *details.WinnerID != "u2" {
		t.Fatalf("expected winner u2, got %v", details.WinnerID)
	}
}

func TestGetUserSubmissions(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{results: []*executor.ExecuteResult{
		accepted("1", 5),
		accepted("999", 5),
	}}
	svc, _, db := newSubmissionService(t, exec)

	seedUser(t, db, "u1", "alice")
	problemID := seedProblem(t, db, model.DifficultyEasy, "1")

	for i := 0; i < 2; i++ {
		if _, err := svc.SubmitCode(context.Background(), &model.SubmitCodeParam{
			CommonParam: operator("u1", "alice"),
			ProblemID:   problemID,
			Code:        "x",
			Language:    "go",
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	list, err := svc.GetUserSubmissions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user submissions failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(list))
	}
	// 最新的提交排在最前
	if list[0].Status != model.SubmissionStatusWrongAnswer {
		t.Fatalf("expected latest submission first, got %s", list[0].Status)
	}
}

func TestNormalizeOutput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"5 \r\n6\r\n", "5\n6"},
		{"  hello  ", "hello"},
		{"a\rb\rc", "a\nb\nc"},
		{"1\n  2  \n3\n", "1\n2\n3"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeOutput(c.in); got != c.want {
			t.Fatalf("normalizeOutput(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
