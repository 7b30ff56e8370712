package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKFactorSteps(t *testing.T) {
	cases := []struct {
		hours int
		want  int
	}{
		{0, 50},
		{499, 50},
		{500, 40},
		{999, 40},
		{1000, 30},
		{2999, 30},
		{3000, 20},
		{4999, 20},
		{5000, 10},
		{100000, 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, kFactor(tc.hours), "hours=%d", tc.hours)
	}
}

func TestExpectedScoreSymmetry(t *testing.T) {
	// Ожидания соперников в сумме дают единицу.
	pairs := [][2]int{{0, 0}, {100, -50}, {1200, 800}, {-300, 400}}
	for _, p := range pairs {
		sum := expectedScore(p[0], p[1]) + expectedScore(p[1], p[0])
		assert.InDelta(t, 1.0, sum, 1e-9, "elos=%v", p)
	}
	assert.InDelta(t, 0.5, expectedScore(1000, 1000), 1e-9)
}

func TestUpdateRatingWinNeverDecreases(t *testing.T) {
	// Победа над соперником не слабее себя всегда добавляет очки.
	for _, tc := range [][2]int{{0, 0}, {0, 200}, {1000, 1000}, {800, 1600}} {
		newElo, _ := UpdateRating(tc[0], tc[1], 1.0, 0)
		assert.Greater(t, newElo, tc[0], "elo=%d opp=%d", tc[0], tc[1])
	}
}

func TestUpdateRatingFirstMatchFromZero(t *testing.T) {
	// Равные новички: победитель +25, проигравший -25 при K=50.
	winElo, winK := UpdateRating(0, 0, 1.0, 2)
	loseElo, loseK := UpdateRating(0, 0, 0.0, 2)

	require.Equal(t, 50, winK)
	require.Equal(t, 50, loseK)
	assert.Equal(t, 25, winElo)
	assert.Equal(t, -25, loseElo)
}

func TestUpdateRatingDrawBetweenEqualsIsNoop(t *testing.T) {
	newElo, k := UpdateRating(1200, 1200, 0.5, 700)
	assert.Equal(t, 1200, newElo)
	assert.Equal(t, 40, k)
}

func TestUpdateRatingVeteransMoveLess(t *testing.T) {
	// Тот же матч с большим наигрышем двигает рейтинг слабее.
	rookieElo, _ := UpdateRating(1000, 1000, 1.0, 10)
	veteranElo, _ := UpdateRating(1000, 1000, 1.0, 6000)

	assert.Equal(t, 1025, rookieElo)
	assert.Equal(t, 1005, veteranElo)
	assert.Less(t, veteranElo-1000, rookieElo-1000)
}

func TestUpdateRatingRoundsToNearest(t *testing.T) {
	// E(0 против 100) ≈ 0.3599: 50*(1-E) ≈ 32.003 — округляется до 32.
	newElo, _ := UpdateRating(0, 100, 1.0, 1)
	assert.Equal(t, 32, newElo)

	// Поражение: 50*(0-0.3599) ≈ -18.0 — округляется к -18.
	newElo, _ = UpdateRating(0, 100, 0.0, 1)
	assert.Equal(t, -18, newElo)
}

func TestUpdateRatingUsesHoursAfterMatch(t *testing.T) {
	// 499 часов до матча + 1 час игры = 500 часов: K уже вторая ступень.
	_, k := UpdateRating(0, 0, 1.0, 500)
	assert.Equal(t, 40, k)
}

func TestTeamAverageEloIntegerDivision(t *testing.T) {
	assert.Equal(t, 0, teamAverageElo([]int{0, 0, 0}))
	assert.Equal(t, 33, teamAverageElo([]int{100, 0, 0}))
	assert.Equal(t, -1, teamAverageElo([]int{-2, -1, 0}))
	assert.Equal(t, 1250, teamAverageElo([]int{1000, 1500}))
}
