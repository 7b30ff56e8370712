package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerNicknameConflict = errors.New("player nickname conflict")
	ErrPlayerTeamInvalid      = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.Player, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error)
	// ListUnassignedByEloDesc возвращает не более limit игроков без команды,
	// отсортированных по рейтингу по убыванию.
	ListUnassignedByEloDesc(ctx context.Context, exec SQLExecutor, limit int) ([]models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	Update(ctx context.Context, exec SQLExecutor, player *models.Player) error
	DetachAllFromTeam(ctx context.Context, exec SQLExecutor, teamID int) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, nickname, elo, wins, losses, hours_played, rating_adjustment, team_id, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players (nickname, elo, wins, losses, hours_played, rating_adjustment, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		player.Nickname,
		player.Elo,
		player.Wins,
		player.Losses,
		player.HoursPlayed,
		player.RatingAdjustment,
		player.TeamID,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		return mapPlayerError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) ListUnassignedByEloDesc(ctx context.Context, exec SQLExecutor, limit int) ([]models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE team_id IS NULL
		ORDER BY elo DESC, id ASC
		LIMIT $1`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY elo DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM players WHERE nickname = $1)`
	if err := r.db.QueryRowContext(ctx, query, nickname).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		UPDATE players SET
			nickname = $1,
			elo = $2,
			wins = $3,
			losses = $4,
			hours_played = $5,
			rating_adjustment = $6,
			team_id = $7
		WHERE id = $8`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		player.Nickname,
		player.Elo,
		player.Wins,
		player.Losses,
		player.HoursPlayed,
		player.RatingAdjustment,
		player.TeamID,
		player.ID,
	)
	if err != nil {
		return mapPlayerError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) DetachAllFromTeam(ctx context.Context, exec SQLExecutor, teamID int) error {
	query := `UPDATE players SET team_id = NULL WHERE team_id = $1`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, teamID)
	return err
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM players`)
	return err
}

func (r *postgresPlayerRepository) scanPlayer(row *sql.Row) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.Nickname,
		&player.Elo,
		&player.Wins,
		&player.Losses,
		&player.HoursPlayed,
		&player.RatingAdjustment,
		&player.TeamID,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) collectPlayers(rows *sql.Rows) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		scanErr := rows.Scan(
			&player.ID,
			&player.Nickname,
			&player.Elo,
			&player.Wins,
			&player.Losses,
			&player.HoursPlayed,
			&player.RatingAdjustment,
			&player.TeamID,
			&player.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func mapPlayerError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "players_nickname_key" {
				return ErrPlayerNicknameConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
	}
	return err
}
