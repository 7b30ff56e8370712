package services

import (
	"context"

	"github.com/Dosada05/league-system/repositories"
)

type AdminService interface {
	// ResetData удаляет все матчи, игроков и команды одной транзакцией.
	ResetData(ctx context.Context) error
}

type adminService struct {
	tx         repositories.Transactor
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
}

func NewAdminService(
	tx repositories.Transactor,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) AdminService {
	return &adminService{
		tx:         tx,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
	}
}

func (s *adminService) ResetData(ctx context.Context) error {
	// Порядок диктуют внешние ключи: матчи ссылаются на команды,
	// игроки ссылаются на команды.
	return s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteAll(ctx, exec); err != nil {
			return err
		}
		if err := s.playerRepo.DeleteAll(ctx, exec); err != nil {
			return err
		}
		return s.teamRepo.DeleteAll(ctx, exec)
	})
}
