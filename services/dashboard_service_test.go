package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	players := newFakePlayerRepo()
	teams := newFakeTeamRepo()
	matches := newFakeMatchRepo()
	service := NewDashboardService(players, teams, matches)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		players.add(models.Player{Nickname: fmt.Sprintf("player-%d", i+1), Elo: i * 100})
	}
	teams.add(models.Team{Name: "Alpha"})
	teams.add(models.Team{Name: "Beta"})
	teams.add(models.Team{Name: "random-dead", IsRandom: true})
	require.NoError(t, matches.Create(ctx, nil, &models.Match{Team1ID: 1, Team2ID: 2, Duration: 1}))

	stats, err := service.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 15, stats.PlayersTotal)
	// Сгенерированные команды в счётчик не входят.
	assert.Equal(t, 2, stats.TeamsTotal)
	assert.Equal(t, 1, stats.MatchesTotal)

	// Таблица лидеров обрезается и отсортирована по убыванию рейтинга.
	require.Len(t, stats.Leaderboard, leaderboardLimit)
	assert.Equal(t, "player-15", stats.Leaderboard[0].Nickname)
	for i := 1; i < len(stats.Leaderboard); i++ {
		assert.GreaterOrEqual(t, stats.Leaderboard[i-1].Elo, stats.Leaderboard[i].Elo)
	}
}

func TestDashboardStatsEmpty(t *testing.T) {
	service := NewDashboardService(newFakePlayerRepo(), newFakeTeamRepo(), newFakeMatchRepo())

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.PlayersTotal)
	assert.Zero(t, stats.TeamsTotal)
	assert.Zero(t, stats.MatchesTotal)
	assert.Empty(t, stats.Leaderboard)
}

func TestAdminResetData(t *testing.T) {
	players := newFakePlayerRepo()
	teams := newFakeTeamRepo()
	matches := newFakeMatchRepo()
	service := NewAdminService(fakeTransactor{}, players, teams, matches)
	ctx := context.Background()

	team := teams.add(models.Team{Name: "Alpha"})
	players.add(models.Player{Nickname: "neo", TeamID: &team.ID})
	require.NoError(t, matches.Create(ctx, nil, &models.Match{Team1ID: team.ID, Team2ID: team.ID + 1, Duration: 1}))

	require.NoError(t, service.ResetData(ctx))

	playerCount, _ := players.Count(ctx)
	teamCount, _ := teams.Count(ctx)
	matchCount, _ := matches.Count(ctx)
	assert.Zero(t, playerCount)
	assert.Zero(t, teamCount)
	assert.Zero(t, matchCount)
}
