package services

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/storage"
)

// fakeTransactor выполняет функцию без настоящей транзакции: атомарность
// в юнит-тестах обеспечивают сами in-memory репозитории.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	nextID  int
	players map[int]models.Player

	// updateErr позволяет форсировать сбой сохранения конкретного игрока.
	updateErr map[int]error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]models.Player), updateErr: make(map[int]error)}
}

func (f *fakePlayerRepo) add(player models.Player) models.Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	player.ID = f.nextID
	f.players[player.ID] = player
	return player
}

func (f *fakePlayerRepo) get(id int) models.Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.players[id]
}

func (f *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.players {
		if existing.Nickname == player.Nickname {
			return repositories.ErrPlayerNicknameConflict
		}
	}
	f.nextID++
	player.ID = f.nextID
	f.players[player.ID] = *player
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &player, nil
}

func (f *fakePlayerRepo) ListByIDs(_ context.Context, ids []int) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	players := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if player, ok := f.players[id]; ok {
			players = append(players, player)
		}
	}
	return players, nil
}

func (f *fakePlayerRepo) ListByTeamID(_ context.Context, teamID int) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	players := make([]models.Player, 0)
	for _, player := range f.players {
		if player.TeamID != nil && *player.TeamID == teamID {
			players = append(players, player)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (f *fakePlayerRepo) ListUnassignedByEloDesc(_ context.Context, _ repositories.SQLExecutor, limit int) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	players := make([]models.Player, 0)
	for _, player := range f.players {
		if player.TeamID == nil {
			players = append(players, player)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Elo != players[j].Elo {
			return players[i].Elo > players[j].Elo
		}
		return players[i].ID < players[j].ID
	})
	if len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

func (f *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	players := make([]models.Player, 0, len(f.players))
	for _, player := range f.players {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Elo != players[j].Elo {
			return players[i].Elo > players[j].Elo
		}
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (f *fakePlayerRepo) ExistsByNickname(_ context.Context, nickname string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, player := range f.players {
		if player.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.updateErr[player.ID]; ok {
		return err
	}
	if _, ok := f.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	f.players[player.ID] = *player
	return nil
}

func (f *fakePlayerRepo) DetachAllFromTeam(_ context.Context, _ repositories.SQLExecutor, teamID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, player := range f.players {
		if player.TeamID != nil && *player.TeamID == teamID {
			player.TeamID = nil
			f.players[id] = player
		}
	}
	return nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.players), nil
}

func (f *fakePlayerRepo) DeleteAll(_ context.Context, _ repositories.SQLExecutor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = make(map[int]models.Player)
	return nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]models.Team)}
}

func (f *fakeTeamRepo) add(team models.Team) models.Team {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	team.ID = f.nextID
	f.teams[team.ID] = team
	return team
}

func (f *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	f.nextID++
	team.ID = f.nextID
	f.teams[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (f *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	teams := make([]models.Team, 0, len(f.teams))
	for _, team := range f.teams {
		if !team.IsRandom {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (f *fakeTeamRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, team := range f.teams {
		if team.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	f.teams[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	f.teams[id] = team
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, team := range f.teams {
		if !team.IsRandom {
			count++
		}
	}
	return count, nil
}

func (f *fakeTeamRepo) DeleteAll(_ context.Context, _ repositories.SQLExecutor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = make(map[int]models.Team)
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{}
}

func (f *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	match.ID = f.nextID
	f.matches = append(f.matches, *match)
	return nil
}

func (f *fakeMatchRepo) List(_ context.Context) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Match(nil), f.matches...), nil
}

func (f *fakeMatchRepo) ListByTeamID(_ context.Context, teamID int) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := make([]models.Match, 0)
	for _, match := range f.matches {
		if match.Team1ID == teamID || match.Team2ID == teamID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (f *fakeMatchRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matches), nil
}

func (f *fakeMatchRepo) DeleteAll(_ context.Context, _ repositories.SQLExecutor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches = nil
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) recorded() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	deleted  []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string][]byte)}
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded[key] = data
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploaded, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

var _ repositories.PlayerRepository = (*fakePlayerRepo)(nil)
var _ repositories.TeamRepository = (*fakeTeamRepo)(nil)
var _ repositories.MatchRepository = (*fakeMatchRepo)(nil)
var _ repositories.Transactor = fakeTransactor{}
var _ storage.FileUploader = (*fakeUploader)(nil)
var _ Notifier = (*recordingNotifier)(nil)
