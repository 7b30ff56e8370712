package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/storage"
)

// Начальное значение плейсхолдера рейтинговой поправки при вступлении
// в команду: первая ступень K-фактора.
const initialRatingAdjustment = 50

type CreateTeamInput struct {
	Name      string `json:"name"`
	PlayerIDs []int  `json:"player_ids"`
}

type SwapPlayersInput struct {
	Team1ID        int   `json:"team1_id"`
	Team2ID        int   `json:"team2_id"`
	Team1PlayerIDs []int `json:"team1_player_ids"`
	Team2PlayerIDs []int `json:"team2_player_ids"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeamName(ctx context.Context, id int, name string) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	SwapPlayers(ctx context.Context, input SwapPlayersInput) error
	// GenerateTeams собирает из свободных игроков две сбалансированные
	// сгенерированные команды размера teamSize и возвращает их с составами.
	GenerateTeams(ctx context.Context, teamSize int) (*models.Team, *models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	tx         repositories.Transactor
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	uploader   storage.FileUploader
}

func NewTeamService(
	tx repositories.Transactor,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		tx:         tx,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		uploader:   uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	exists, err := s.teamRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if exists {
		return nil, ErrTeamNameConflict
	}

	ids := uniqueIDs(input.PlayerIDs)
	if len(ids) != models.TeamSize {
		return nil, ErrInvalidTeamSize
	}

	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	if len(players) != models.TeamSize {
		return nil, ErrPlayerNotFound
	}
	for _, player := range players {
		if player.TeamID != nil {
			return nil, fmt.Errorf("%w: %s", ErrPlayerAlreadyInTeam, player.Nickname)
		}
	}

	team := &models.Team{Name: input.Name}

	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.teamRepo.Create(ctx, exec, team); err != nil {
			if errors.Is(err, repositories.ErrTeamNameConflict) {
				return ErrTeamNameConflict
			}
			return err
		}
		return s.assignPlayers(ctx, exec, players, team.ID)
	})
	if err != nil {
		return nil, err
	}

	team.Members = players
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.resolveTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.playerRepo.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	team.Members = members
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeamName(ctx context.Context, id int, name string) (*models.Team, error) {
	team, err := s.resolveTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if team.Name != name {
		exists, err := s.teamRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check team name: %w", err)
		}
		if exists {
			return nil, ErrTeamNameConflict
		}
	}

	team.Name = name
	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.resolveTeam(ctx, id)
	if err != nil {
		return err
	}

	members, err := s.playerRepo.ListByTeamID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load team members: %w", err)
	}
	if len(members) > 0 {
		return ErrTeamHasPlayers
	}

	matches, err := s.matchRepo.ListByTeamID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load team matches: %w", err)
	}
	if len(matches) > 0 {
		return ErrTeamHasMatches
	}

	if team.LogoKey != nil {
		// Осиротевший файл в бакете хуже, чем лишний вызов удаления,
		// но сбой хранилища не должен блокировать удаление команды.
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	return s.teamRepo.Delete(ctx, nil, id)
}

func (s *teamService) SwapPlayers(ctx context.Context, input SwapPlayersInput) error {
	if input.Team1ID == input.Team2ID {
		return ErrSameTeamSwap
	}

	team1, err := s.resolveTeam(ctx, input.Team1ID)
	if err != nil {
		return err
	}
	team2, err := s.resolveTeam(ctx, input.Team2ID)
	if err != nil {
		return err
	}

	team1Players, err := s.resolveSwapSide(ctx, input.Team1PlayerIDs, team1.ID)
	if err != nil {
		return err
	}
	team2Players, err := s.resolveSwapSide(ctx, input.Team2PlayerIDs, team2.ID)
	if err != nil {
		return err
	}

	// Обе стороны обмена фиксируются одной транзакцией: частичный
	// обмен снаружи не наблюдаем.
	return s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		for i := range team1Players {
			team1Players[i].TeamID = &team2.ID
			if err := s.playerRepo.Update(ctx, exec, &team1Players[i]); err != nil {
				return err
			}
		}
		for i := range team2Players {
			team2Players[i].TeamID = &team1.ID
			if err := s.playerRepo.Update(ctx, exec, &team2Players[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *teamService) GenerateTeams(ctx context.Context, teamSize int) (*models.Team, *models.Team, error) {
	if teamSize < 1 {
		return nil, nil, ErrInvalidGenerateSize
	}

	poolSize := teamSize * 2
	pool, err := s.playerRepo.ListUnassignedByEloDesc(ctx, nil, poolSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load unassigned players: %w", err)
	}
	if len(pool) < poolSize {
		return nil, nil, ErrNotEnoughPlayers
	}

	roster1, roster2 := snakeDraft(pool)

	team1 := &models.Team{Name: randomTeamName(), IsRandom: true}
	team2 := &models.Team{Name: randomTeamName(), IsRandom: true}

	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.teamRepo.Create(ctx, exec, team1); err != nil {
			return err
		}
		if err := s.teamRepo.Create(ctx, exec, team2); err != nil {
			return err
		}
		if err := s.assignPlayers(ctx, exec, roster1, team1.ID); err != nil {
			return err
		}
		return s.assignPlayers(ctx, exec, roster2, team2.ID)
	})
	if err != nil {
		return nil, nil, err
	}

	team1.Members = roster1
	team2.Members = roster2
	return team1, team2, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.resolveTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	ext, ok := logoExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrLogoContentType
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, err
	}

	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// snakeDraft раздаёт отсортированный по рейтингу пул двумя указателями
// с обоих концов: на каждом шаге очередная команда получает сильнейшего
// из оставшихся, а вторая — слабейшего, после чего очередь переходит.
// Нечётный остаток достаётся команде, чья очередь подошла.
// Алгоритм детерминирован: одинаковый пул даёт одинаковое разбиение.
func snakeDraft(pool []models.Player) ([]models.Player, []models.Player) {
	team1 := make([]models.Player, 0, (len(pool)+1)/2)
	team2 := make([]models.Player, 0, (len(pool)+1)/2)
	sides := [2]*[]models.Player{&team1, &team2}

	left, right := 0, len(pool)-1
	turn := 0
	for left < right {
		*sides[turn] = append(*sides[turn], pool[left])
		*sides[1-turn] = append(*sides[1-turn], pool[right])
		left++
		right--
		turn = 1 - turn
	}
	if left == right {
		*sides[turn] = append(*sides[turn], pool[left])
	}
	return team1, team2
}

func (s *teamService) assignPlayers(ctx context.Context, exec repositories.SQLExecutor, players []models.Player, teamID int) error {
	adjustment := initialRatingAdjustment
	for i := range players {
		players[i].TeamID = &teamID
		players[i].RatingAdjustment = &adjustment
		if err := s.playerRepo.Update(ctx, exec, &players[i]); err != nil {
			return fmt.Errorf("failed to assign player %d to team %d: %w", players[i].ID, teamID, err)
		}
	}
	return nil
}

func (s *teamService) resolveTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) resolveSwapSide(ctx context.Context, playerIDs []int, teamID int) ([]models.Player, error) {
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	if len(players) != len(uniqueIDs(playerIDs)) {
		return nil, ErrPlayerNotFound
	}
	for _, player := range players {
		if player.TeamID == nil || *player.TeamID != teamID {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotInTeam, player.Nickname)
		}
	}
	return players, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}

func randomTeamName() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand не отказывает на поддерживаемых платформах
		panic(err)
	}
	return "random-" + hex.EncodeToString(buf)
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
