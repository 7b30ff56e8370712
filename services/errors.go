package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// Ресурс не найден
	ErrNotFound       = errors.New("requested resource not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")

	// Ошибки валидации и бизнес-правил
	ErrInvalidTeamSize      = errors.New("team must have exactly 5 players")
	ErrPlayerAlreadyInTeam  = errors.New("player is already in a team")
	ErrPlayerNotInTeam      = errors.New("player does not belong to the specified team")
	ErrSameTeamSwap         = errors.New("cannot swap players within the same team")
	ErrSameTeamMatch        = errors.New("team1 and team2 must be different teams")
	ErrInvalidWinningTeam   = errors.New("winning team must be either team1 or team2")
	ErrInvalidDuration      = errors.New("duration must be at least 1")
	ErrNotEnoughPlayers     = errors.New("not enough unassigned players to generate teams")
	ErrTeamHasPlayers       = errors.New("cannot delete team with assigned players")
	ErrTeamHasMatches       = errors.New("cannot delete team with associated matches")
	ErrPlayerHasTeam        = errors.New("cannot delete player who is part of a team")
	ErrInvalidGenerateSize  = errors.New("generated team size must be positive")
	ErrLogoContentType      = errors.New("unsupported logo content type")

	// Ошибки конфликтов
	ErrPlayerNicknameConflict = errors.New("nickname is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
)
