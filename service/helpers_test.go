package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/codearena/arena_controller/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	// 共享缓存内存库并发写会触发表锁, 连接池限制为单连接
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Room{},
		&model.RoomParticipant{},
		&model.Problem{},
		&model.ProblemTestCase{},
		&model.Submission{},
		&model.User{},
	)
	if err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, username string) {
	t.Helper()

	user := model.User{ID: id, Username: username}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s failed: %v", id, err)
	}
}

func seedProblem(t *testing.T, db *gorm.DB, difficulty model.ProblemDifficulty, expectedOutputs ...string) uint64 {
	t.Helper()

	problem := model.Problem{
		Title:      "两数之和",
		Difficulty: difficulty,
	}
	for i, expected := range expectedOutputs {
		problem.TestCases = append(problem.TestCases, model.ProblemTestCase{
			Position:       i + 1,
			Input:          fmt.Sprintf("case %d", i+1),
			ExpectedOutput: expected,
		})
	}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatalf("seed problem failed: %v", err)
	}
	return problem.ID
}

func operator(userID, username string) model.CommonParam {
	return model.CommonParam{Operator: userID, OperatorName: username}
}

func ptr[T any](v T) *T {
	return &v
}
