package csv

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:csv_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err = db.AutoMigrate(&model.Room{}, &model.RoomParticipant{}, &model.Submission{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func TestCSVExportRoomResults(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	now := time.Now()
	startedAt := now.Add(-10 * time.Minute)
	problemID := uint64(7)
	winner := "u2"

	room := model.Room{
		ID:              "AB12CD",
		CreatedBy:       "u1",
		ProblemID:       &problemID,
		Mode:            model.RoomModeSingle,
		MaxParticipants: 4,
		Visibility:      model.RoomVisibilityPublic,
		Status:          model.RoomStatusCompleted,
		WinnerID:        &winner,
		StartedAt:       &startedAt,
		CreatedAt:       now.Add(-time.Hour),
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room failed: %v", err)
	}

	left := now.Add(-5 * time.Minute)
	participants := []model.RoomParticipant{
		{RoomID: room.ID, UserID: "u1", Username: "alice", JoinedAt: now.Add(-time.Hour)},
		{RoomID: room.ID, UserID: "u2", Username: "bob", JoinedAt: now.Add(-50 * time.Minute)},
		{RoomID: room.ID, UserID: "u3", Username: "carol", JoinedAt: now.Add(-40 * time.Minute), LeftAt: &left},
	}
	if err := db.Create(&participants).Error; err != nil {
		t.Fatalf("seed participants failed: %v", err)
	}

	submissions := []model.Submission{
		// u1 两次提交都没过
		{UserID: "u1", ProblemID: problemID, Code: "x", Language: "go", Status: model.SubmissionStatusWrongAnswer, CreatedAt: now.Add(-8 * time.Minute)},
		{UserID: "u1", ProblemID: problemID, Code: "x", Language: "go", Status: model.SubmissionStatusWrongAnswer, CreatedAt: now.Add(-6 * time.Minute)},
		// u2 第二次通过
		{UserID: "u2", ProblemID: problemID, Code: "x", Language: "go", Status: model.SubmissionStatusWrongAnswer, CreatedAt: now.Add(-9 * time.Minute)},
		{UserID: "u2", ProblemID: problemID, Code: "x", Language: "go", Status: model.SubmissionStatusAccepted, ExecutionTime: 23, CreatedAt: now.Add(-7 * time.Minute)},
		// 对局开始前的历史提交不计入
		{UserID: "u1", ProblemID: problemID, Code: "x", Language: "go", Status: model.SubmissionStatusAccepted, ExecutionTime: 5, CreatedAt: now.Add(-2 * time.Hour)},
	}
	if err := db.Create(&submissions).Error; err != nil {
		t.Fatalf("seed submissions failed: %v", err)
	}

	var buf bytes.Buffer
	exp := NewCSVRoomResultExporter(db, logger.NewNopLogger())
	if err := exp.Export(context.Background(), room.ID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "用户ID,用户名,提交次数,通过次数,最短耗时,胜负" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	// 胜者排在最前, 已离开的 u3 不出现
	if lines[1] != "u2,bob,2,1,23ms,胜者" {
		t.Fatalf("unexpected winner row: %q", lines[1])
	}
	if lines[2] != "u1,alice,2,0,," {
		t.Fatalf("unexpected loser row: %q", lines[2])
	}
}

func TestCSVExportEmptyRoom(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	var buf bytes.Buffer
	exp := NewCSVRoomResultExporter(db, logger.NewNopLogger())
	if err := exp.Export(context.Background(), "ZZZZZZ", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only header for unknown room, got %q", buf.String())
	}
}
