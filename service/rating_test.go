package service

import (
	"testing"

	"github.com/codearena/arena_controller/model"
)

func TestRatingDelta(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		difficulty model.ProblemDifficulty
		timeMs     int
		want       int
	}{
		{"cakewalk 满速", model.DifficultyCakewalk, 10, 15},
		{"easy 满速", model.DifficultyEasy, 19, 30},
		{"medium 满速", model.DifficultyMedium, 15, 60},
		{"hard 满速", model.DifficultyHard, 0, 100},
		{"medium 20ms 降档", model.DifficultyMedium, 20, 55},
		{"medium 50ms 降档", model.DifficultyMedium, 50, 50},
		{"hard 99ms", model.DifficultyHard, 99, 85},
		{"easy 100ms 无奖励", model.DifficultyEasy, 100, 20},
		{"cakewalk 超时档", model.DifficultyCakewalk, 5000, 10},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := RatingDelta(c.difficulty, c.timeMs); got != c.want {
				t.Fatalf("RatingDelta(%s, %d) = %d, want %d", c.difficulty, c.timeMs, got, c.want)
			}
		})
	}
}
