package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

// MatchRepository хранит только завершённые матчи. Записи никогда не обновляются.
type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	List(ctx context.Context) ([]models.Match, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.Match, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (team1_id, team2_id, winning_team_id, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.Team1ID,
		match.Team2ID,
		match.WinningTeamID,
		match.Duration,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT id, team1_id, team2_id, winning_team_id, duration, created_at
		FROM matches
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectMatches(rows)
}

func (r *postgresMatchRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.Match, error) {
	query := `
		SELECT id, team1_id, team2_id, winning_team_id, duration, created_at
		FROM matches
		WHERE team1_id = $1 OR team2_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectMatches(rows)
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches`)
	return err
}

func (r *postgresMatchRepository) collectMatches(rows *sql.Rows) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		scanErr := rows.Scan(
			&match.ID,
			&match.Team1ID,
			&match.Team2ID,
			&match.WinningTeamID,
			&match.Duration,
			&match.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
