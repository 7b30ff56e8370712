package models

import "time"

// Match — неизменяемая запись сыгранного матча.
// WinningTeamID == nil означает ничью.
type Match struct {
	ID            int       `json:"id"`
	Team1ID       int       `json:"team1_id"`
	Team2ID       int       `json:"team2_id"`
	WinningTeamID *int      `json:"winning_team_id,omitempty"`
	Duration      int       `json:"duration"`
	CreatedAt     time.Time `json:"created_at"`
}
