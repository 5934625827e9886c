package service

import (
	"context"
	"fmt"

	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/errors"
	"github.com/codearena/arena_controller/pkg/logger"
	"gorm.io/gorm"
)

const defaultProblemPageSize = 20

type ProblemService interface {
	// GetProblem 获取题目及其全部测试用例, 测试用例按 position 升序
	GetProblem(ctx context.Context, problemID uint64) (*model.Problem, error)
	// ListProblemIDs 获取全量题目 ID, 供随机抽题使用
	ListProblemIDs(ctx context.Context) ([]uint64, error)
	// GetProblemList 分页获取题目列表
	GetProblemList(ctx context.Context, param *model.GetProblemListParam) (*model.GetProblemListResponse, error)
}

type ProblemServiceImpl struct {
	db  *gorm.DB
	log logger.Logger
}

var _ ProblemService = (*ProblemServiceImpl)(nil)

func NewProblemService(db *gorm.DB, log logger.Logger) ProblemService {
	return &ProblemServiceImpl{
		db:  db,
		log: log,
	}
}

// GetProblem 获取题目及其全部测试用例, 测试用例按 position 升序
func (s *ProblemServiceImpl) GetProblem(ctx context.Context, problemID uint64) (*model.Problem, error) {
	var problem model.Problem
	err := s.db.WithContext(ctx).
		Preload("TestCases", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("id = ?", problemID).
		First(&problem).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ProblemNotFound)
		}
		return nil, fmt.Errorf("GetProblem failed at find problem: %w", err)
	}
	return &problem, nil
}

// ListProblemIDs 获取全量题目 ID, 供随机抽题使用
func (s *ProblemServiceImpl) ListProblemIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Problem{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("ListProblemIDs failed at pluck id: %w", err)
	}
	return ids, nil
}

// GetProblemList 分页获取题目列表
func (s *ProblemServiceImpl) GetProblemList(ctx context.Context, param *model.GetProblemListParam) (*model.GetProblemListResponse, error) {
	page := param.Page
	if page < 1 {
		page = 1
	}
	pageSize := param.PageSize
	if pageSize < 1 {
		pageSize = defaultProblemPageSize
	}

	query := s.db.WithContext(ctx).Model(&model.Problem{})
	if param.Difficulty != nil {
		query = query.Where("difficulty = ?", *param.Difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("GetProblemList failed at count problems: %w", err)
	}

	var problems []model.Problem
	err := query.Order("id asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&problems).Error
	if err != nil {
		return nil, fmt.Errorf("GetProblemList failed at find problems: %w", err)
	}

	list := make([]model.ProblemResponse, 0, len(problems))
	for _, p := range problems {
		list = append(list, model.ProblemResponse{
			ID:                  p.ID,
			Title:               p.Title,
			Difficulty:          p.Difficulty,
			TotalSubmissions:    p.TotalSubmissions,
			AcceptedSubmissions: p.AcceptedSubmissions,
		})
	}
	return &model.GetProblemListResponse{
		Total: int(total),
		List:  list,
	}, nil
}
