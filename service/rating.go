package service

import "github.com/codearena/arena_controller/model"

// 各难度的基础分与速度奖励分
var (
	basePoints = map[model.ProblemDifficulty]int{
		model.DifficultyCakewalk: 10,
		model.DifficultyEasy:     20,
		model.DifficultyMedium:   40,
		model.DifficultyHard:     70,
	}
	bonusPoints = map[model.ProblemDifficulty]int{
		model.DifficultyCakewalk: 5,
		model.DifficultyEasy:     10,
		model.DifficultyMedium:   20,
		model.DifficultyHard:     30,
	}
)

func speedMultiplier(executionTimeMs int) float64 {
	switch {
	case executionTimeMs < 20:
		return 1.0
	case executionTimeMs < 50:
		return 0.75
	case executionTimeMs < 100:
		return 0.5
	default:
		return 0
	}
}

// RatingDelta 计算首次通过的加分, 奖励分按速度系数折算后向下取整
func RatingDelta(difficulty model.ProblemDifficulty, executionTimeMs int) int {
	return basePoints[difficulty] + int(float64(bonusPoints[difficulty])*speedMultiplier(executionTimeMs))
}
