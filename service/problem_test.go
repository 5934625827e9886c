package service

import (
	"context"
	"testing"

	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/errors"
	"github.com/codearena/arena_controller/pkg/logger"
)

func TestGetProblemWithOrderedTestCases(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewProblemService(db, logger.NewNopLogger())

	problemID := seedProblem(t, db, model.DifficultyMedium, "1", "2", "3")

	problem, err := svc.GetProblem(context.Background(), problemID)
	if err != nil {
		t.Fatalf("get problem failed: %v", err)
	}
	if len(problem.TestCases) != 3 {
		t.Fatalf("expected 3 test cases, got %d", len(problem.TestCases))
	}
	for i, tc := range problem.TestCases {
		if tc.Position != i+1 {
			t.Fatalf("expected test cases ordered by position, got %d at index %d", tc.Position, i)
		}
	}

	_, err = svc.GetProblem(context.Background(), 9999)
	if !errors.Is(err, errors.ProblemNotFound) {
		t.Fatalf("expected ProblemNotFound, got %v", err)
	}
}

func TestGetProblemListFiltersByDifficulty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewProblemService(db, logger.NewNopLogger())

	seedProblem(t, db, model.DifficultyEasy, "1")
	seedProblem(t, db, model.DifficultyEasy, "1")
	seedProblem(t, db, model.DifficultyHard, "1")

	all, err := svc.GetProblemList(context.Background(), &model.GetProblemListParam{})
	if err != nil {
		t.Fatalf("list problems failed: %v", err)
	}
	if all.Total != 3 || len(all.List) != 3 {
		t.Fatalf("expected 3 problems, got total %d list %d", all.Total, len(all.List))
	}

	hard, err := svc.GetProblemList(context.Background(), &model.GetProblemListParam{
		Difficulty: ptr(model.DifficultyHard),
	})
	if err != nil {
		t.Fatalf("list hard problems failed: %v", err)
	}
	if hard.Total != 1 || len(hard.List) != 1 || hard.List[0].Difficulty != model.DifficultyHard {
		t.Fatalf("unexpected hard list %+v", hard)
	}
}

func TestGetProblemListPagination(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewProblemService(db, logger.NewNopLogger())

	for i := 0; i < 5; i++ {
		seedProblem(t, db, model.DifficultyEasy, "1")
	}

	page2, err := svc.GetProblemList(context.Background(), &model.GetProblemListParam{
		Page:     2,
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if page2.Total != 5 || len(page2.List) != 2 {
		t.Fatalf("expected total 5 with 2 items on page 2, got %d/%d", page2.Total, len(page2.List))
	}
}
