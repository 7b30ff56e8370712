package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

type CreateMatchInput struct {
	Team1ID       int  `json:"team1_id"`
	Team2ID       int  `json:"team2_id"`
	WinningTeamID *int `json:"winning_team_id"`
	Duration      int  `json:"duration"`
}

type MatchService interface {
	// CreateMatch фиксирует результат матча и пересчитывает рейтинг всех
	// игроков обеих команд. Для пары постоянных команд создаётся ровно одна
	// запись матча; матчи со сгенерированными командами не сохраняются.
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
}

type matchService struct {
	tx         repositories.Transactor
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	notifier   Notifier
}

func NewMatchService(
	tx repositories.Transactor,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
) MatchService {
	return &matchService{
		tx:         tx,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		notifier:   notifier,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	// Порядок проверок фиксирован: первая нарушенная и возвращается.
	if input.Duration < 1 {
		return nil, ErrInvalidDuration
	}
	if input.Team1ID == input.Team2ID {
		return nil, ErrSameTeamMatch
	}

	team1, err := s.resolveTeam(ctx, input.Team1ID)
	if err != nil {
		return nil, err
	}
	team2, err := s.resolveTeam(ctx, input.Team2ID)
	if err != nil {
		return nil, err
	}

	if input.WinningTeamID != nil {
		if *input.WinningTeamID != team1.ID && *input.WinningTeamID != team2.ID {
			return nil, ErrInvalidWinningTeam
		}
	}

	team1Players, err := s.loadRoster(ctx, team1)
	if err != nil {
		return nil, err
	}
	team2Players, err := s.loadRoster(ctx, team2)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		Team1ID:       team1.ID,
		Team2ID:       team2.ID,
		WinningTeamID: input.WinningTeamID,
		Duration:      input.Duration,
	}

	// Сгенерированные команды существуют ради одной игры: рейтинг
	// пересчитывается, но постоянной записи матча не остаётся.
	if !team1.IsRandom && !team2.IsRandom {
		if err := s.matchRepo.Create(ctx, nil, match); err != nil {
			return nil, fmt.Errorf("failed to save match: %w", err)
		}
	}

	if err := s.updatePlayerStats(ctx, team1Players, team2Players, input.WinningTeamID, team1.ID, input.Duration); err != nil {
		return nil, err
	}

	for _, team := range []*models.Team{team1, team2} {
		if team.IsRandom {
			if err := s.deleteRandomTeam(ctx, team.ID); err != nil {
				return nil, fmt.Errorf("failed to clean up generated team %d: %w", team.ID, err)
			}
		}
	}

	s.notifier.Notify(Event{Type: EventMatchRecorded, Payload: match})

	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	return s.matchRepo.List(ctx)
}

func (s *matchService) resolveTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *matchService) loadRoster(ctx context.Context, team *models.Team) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeamID(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	// В зачётных матчах участвуют только полные постоянные составы.
	if !team.IsRandom && len(players) != models.TeamSize {
		return nil, ErrInvalidTeamSize
	}
	if len(players) == 0 {
		return nil, ErrInvalidTeamSize
	}
	return players, nil
}

func (s *matchService) updatePlayerStats(ctx context.Context, team1Players, team2Players []models.Player, winningTeamID *int, team1ID, duration int) error {
	var sTeam1, sTeam2 float64

	switch {
	case winningTeamID == nil: // ничья
		sTeam1, sTeam2 = 0.5, 0.5
	case *winningTeamID == team1ID:
		sTeam1, sTeam2 = 1.0, 0.0
		for i := range team1Players {
			team1Players[i].Wins++
		}
		for i := range team2Players {
			team2Players[i].Losses++
		}
	default:
		sTeam1, sTeam2 = 0.0, 1.0
		for i := range team2Players {
			team2Players[i].Wins++
		}
		for i := range team1Players {
			team1Players[i].Losses++
		}
	}

	// Средние считаются по рейтингам до матча, до любых обновлений.
	avgEloTeam1 := teamAverageElo(collectElo(team1Players))
	avgEloTeam2 := teamAverageElo(collectElo(team2Players))

	// Каждый игрок сохраняется сразу. Сбой на середине оставляет
	// обновлённым префикс списка — принятое поведение, не скрываем его
	// общей транзакцией.
	for i := range team1Players {
		if err := s.applyRating(ctx, &team1Players[i], avgEloTeam2, sTeam1, duration); err != nil {
			return err
		}
	}
	for i := range team2Players {
		if err := s.applyRating(ctx, &team2Players[i], avgEloTeam1, sTeam2, duration); err != nil {
			return err
		}
	}
	return nil
}

func (s *matchService) applyRating(ctx context.Context, player *models.Player, opponentAvgElo int, score float64, duration int) error {
	hoursPlayed := player.HoursPlayed + duration
	newElo, k := UpdateRating(player.Elo, opponentAvgElo, score, hoursPlayed)

	player.Elo = newElo
	player.HoursPlayed = hoursPlayed
	player.RatingAdjustment = &k

	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		return fmt.Errorf("failed to update player %d after match: %w", player.ID, err)
	}
	return nil
}

// deleteRandomTeam откатывает членство и удаляет команду одной транзакцией.
func (s *matchService) deleteRandomTeam(ctx context.Context, teamID int) error {
	return s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.playerRepo.DetachAllFromTeam(ctx, exec, teamID); err != nil {
			return err
		}
		return s.teamRepo.Delete(ctx, exec, teamID)
	})
}

func collectElo(players []models.Player) []int {
	elos := make([]int, len(players))
	for i, player := range players {
		elos[i] = player.Elo
	}
	return elos
}
