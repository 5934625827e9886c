package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codearena/arena_controller/pkg/logger"
)

func validJob(name string, fn JobFunc) *JobConfig {
	return &JobConfig{
		Name:     name,
		CronExpr: "0 */5 * * * *",
		JobFunc:  fn,
		Enabled:  true,
	}
}

func TestAddJobValidation(t *testing.T) {
	t.Parallel()
	s := NewCronScheduler(logger.NewNopLogger())

	noop := func(context.Context) error { return nil }

	if err := s.AddJob(validJob("ok", noop)); err != nil {
		t.Fatalf("add valid job failed: %v", err)
	}
	if err := s.AddJob(&JobConfig{CronExpr: "* * * * * *", JobFunc: noop}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := s.AddJob(&JobConfig{Name: "bad", CronExpr: "not a cron", JobFunc: noop}); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
	if err := s.AddJob(&JobConfig{Name: "nofn", CronExpr: "* * * * * *"}); err == nil {
		t.Fatal("expected error for nil job func")
	}
}

func TestAddJobDefaultTimeout(t *testing.T) {
	t.Parallel()
	s := NewCronScheduler(logger.NewNopLogger())

	cfg := validJob("ok", func(context.Context) error { return nil })
	if err := s.AddJob(cfg); err != nil {
		t.Fatalf("add job failed: %v", err)
	}
	if cfg.Timeout != 10*time.Minute {
		t.Fatalf("expected default timeout 10m, got %v", cfg.Timeout)
	}
}

func TestRunJobOnce(t *testing.T) {
	t.Parallel()
	s := NewCronScheduler(logger.NewNopLogger())

	ran := false
	err := s.AddJob(validJob("manual", func(context.Context) error {
		ran = true
		return nil
	}))
	if err != nil {
		t.Fatalf("add job failed: %v", err)
	}

	if err = s.RunJobOnce("manual"); err != nil {
		t.Fatalf("run job once failed: %v", err)
	}
	if !ran {
		t.Fatal("expected job func to run")
	}

	if err = s.RunJobOnce("ghost"); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestJobStatusTracksFailures(t *testing.T) {
	t.Parallel()
	s := NewCronScheduler(logger.NewNopLogger())

	jobErr := errors.New("boom")
	err := s.AddJob(validJob("failing", func(context.Context) error { return jobErr }))
	if err != nil {
		t.Fatalf("add job failed: %v", err)
	}

	// wrapJobFunc 负责统计, 直接调用模拟一次调度触发
	s.wrapJobFunc("failing", s.jobs["failing"])()

	statuses := s.GetJobStatuses()
	st, ok := statuses["failing"]
	if !ok {
		t.Fatal("expected status for failing job")
	}
	if st.RunCount != 1 || st.ErrorCount != 1 {
		t.Fatalf("expected 1 run and 1 error, got %d/%d", st.RunCount, st.ErrorCount)
	}
	if st.LastError != "boom" {
		t.Fatalf("unexpected last error %q", st.LastError)
	}
}
