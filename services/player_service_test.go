package services

import (
	"context"
	"testing"

	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlayerStartsWithZeroStats(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewPlayerService(repo)

	player, err := service.CreatePlayer(context.Background(), CreatePlayerInput{Nickname: "neo"})
	require.NoError(t, err)
	require.NotZero(t, player.ID)
	assert.Equal(t, "neo", player.Nickname)
	assert.Zero(t, player.Elo)
	assert.Zero(t, player.Wins)
	assert.Zero(t, player.Losses)
	assert.Zero(t, player.HoursPlayed)
	assert.Nil(t, player.TeamID)
	assert.Nil(t, player.RatingAdjustment)
}

func TestCreatePlayerNicknameConflict(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewPlayerService(repo)
	ctx := context.Background()

	_, err := service.CreatePlayer(ctx, CreatePlayerInput{Nickname: "neo"})
	require.NoError(t, err)

	_, err = service.CreatePlayer(ctx, CreatePlayerInput{Nickname: "neo"})
	assert.ErrorIs(t, err, ErrPlayerNicknameConflict)
}

func TestUpdatePlayer(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewPlayerService(repo)
	ctx := context.Background()

	neo := repo.add(models.Player{Nickname: "neo"})
	repo.add(models.Player{Nickname: "trinity"})

	_, err := service.UpdatePlayer(ctx, neo.ID, UpdatePlayerInput{Nickname: "trinity"})
	assert.ErrorIs(t, err, ErrPlayerNicknameConflict)

	// Обновление без смены никнейма не считается конфликтом с самим собой.
	updated, err := service.UpdatePlayer(ctx, neo.ID, UpdatePlayerInput{
		Nickname:    "neo",
		Elo:         1200,
		Wins:        7,
		Losses:      3,
		HoursPlayed: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 1200, updated.Elo)
	assert.Equal(t, 7, updated.Wins)
	assert.Equal(t, 3, updated.Losses)
	assert.Equal(t, 40, updated.HoursPlayed)

	_, err = service.UpdatePlayer(ctx, 999, UpdatePlayerInput{Nickname: "ghost"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDeletePlayerBlockedWhileOnTeam(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewPlayerService(repo)
	ctx := context.Background()

	teamID := 1
	member := repo.add(models.Player{Nickname: "neo", TeamID: &teamID})
	free := repo.add(models.Player{Nickname: "trinity"})

	err := service.DeletePlayer(ctx, member.ID)
	assert.ErrorIs(t, err, ErrPlayerHasTeam)
	_, err = service.GetPlayerByID(ctx, member.ID)
	assert.NoError(t, err)

	require.NoError(t, service.DeletePlayer(ctx, free.ID))
	_, err = service.GetPlayerByID(ctx, free.ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestLeaveTeamIsIdempotent(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewPlayerService(repo)
	ctx := context.Background()

	teamID := 1
	member := repo.add(models.Player{Nickname: "neo", TeamID: &teamID})

	player, err := service.LeaveTeam(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, player.TeamID)

	// Повторный выход из команды — no-op, не ошибка.
	player, err = service.LeaveTeam(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, player.TeamID)

	_, err = service.LeaveTeam(ctx, 999)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestListPlayersOrderedByElo(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewPlayerService(repo)

	repo.add(models.Player{Nickname: "mid", Elo: 500})
	repo.add(models.Player{Nickname: "top", Elo: 900})
	repo.add(models.Player{Nickname: "low", Elo: 100})

	players, err := service.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "top", players[0].Nickname)
	assert.Equal(t, "mid", players[1].Nickname)
	assert.Equal(t, "low", players[2].Nickname)
}
