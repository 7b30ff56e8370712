package services

import (
	"context"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"golang.org/x/sync/errgroup"
)

const leaderboardLimit = 10

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) DashboardService {
	return &dashboardService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.playerRepo.Count(gCtx)
		stats.PlayersTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.teamRepo.Count(gCtx)
		stats.TeamsTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.matchRepo.Count(gCtx)
		stats.MatchesTotal = count
		return err
	})
	g.Go(func() error {
		players, err := s.playerRepo.List(gCtx)
		if err != nil {
			return err
		}
		if len(players) > leaderboardLimit {
			players = players[:leaderboardLimit]
		}
		stats.Leaderboard = players
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
