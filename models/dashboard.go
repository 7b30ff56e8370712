package models

type DashboardStats struct {
	PlayersTotal int      `json:"players_total"`
	TeamsTotal   int      `json:"teams_total"`
	MatchesTotal int      `json:"matches_total"`
	Leaderboard  []Player `json:"leaderboard"`
}
