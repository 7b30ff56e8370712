package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

type CreatePlayerInput struct {
	Nickname string `json:"nickname"`
}

type UpdatePlayerInput struct {
	Nickname    string `json:"nickname"`
	Elo         int    `json:"elo"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	HoursPlayed int    `json:"hours_played"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	// LeaveTeam выводит игрока из команды. Для игрока без команды — no-op.
	LeaveTeam(ctx context.Context, playerID int) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	exists, err := s.playerRepo.ExistsByNickname(ctx, input.Nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to check nickname: %w", err)
	}
	if exists {
		return nil, ErrPlayerNicknameConflict
	}

	// Новый игрок стартует с нулевой статистикой, без команды
	// и без рейтинговой поправки.
	player := &models.Player{Nickname: input.Nickname}

	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNicknameConflict) {
			return nil, ErrPlayerNicknameConflict
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	return s.resolvePlayer(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.resolvePlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if player.Nickname != input.Nickname {
		exists, err := s.playerRepo.ExistsByNickname(ctx, input.Nickname)
		if err != nil {
			return nil, fmt.Errorf("failed to check nickname: %w", err)
		}
		if exists {
			return nil, ErrPlayerNicknameConflict
		}
	}

	player.Nickname = input.Nickname
	player.Elo = input.Elo
	player.Wins = input.Wins
	player.Losses = input.Losses
	player.HoursPlayed = input.HoursPlayed

	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNicknameConflict) {
			return nil, ErrPlayerNicknameConflict
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.resolvePlayer(ctx, id)
	if err != nil {
		return err
	}

	if player.TeamID != nil {
		return ErrPlayerHasTeam
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) LeaveTeam(ctx context.Context, playerID int) (*models.Player, error) {
	player, err := s.resolvePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.TeamID == nil {
		return player, nil
	}

	player.TeamID = nil
	player.Team = nil
	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to detach player %d: %w", playerID, err)
	}
	return player, nil
}

func (s *playerService) resolvePlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
