package models

import "time"

type Player struct {
	ID          int    `json:"id"`
	Nickname    string `json:"nickname"`
	Elo         int    `json:"elo"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	HoursPlayed int    `json:"hours_played"`

	// RatingAdjustment хранит последний применённый K-фактор.
	// NULL до первого матча (или до вступления в команду).
	RatingAdjustment *int `json:"rating_adjustment"`

	TeamID    *int      `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Team *Team `json:"team,omitempty"`
}
