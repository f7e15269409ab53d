package models

import "time"

// PlayerWeekRoster is one player's roster entry for a given season and
// week. (player_id, season, week) is unique.
type PlayerWeekRoster struct {
	ID       int    `json:"id" db:"id"`
	PlayerID string `json:"player_id" db:"player_id"`
	Season   int    `json:"season" db:"season"`
	Week     int    `json:"week" db:"week"`

	TeamAbbr           string  `json:"team" db:"team_abbr"`
	Position           string  `json:"position" db:"position"`
	DepthChartPosition *string `json:"depth_chart_position,omitempty" db:"depth_chart_position"`
	Jersey             *int    `json:"jersey_number,omitempty" db:"jersey_number"`
	Status             *string `json:"status,omitempty" db:"status"`
	GameType           *string `json:"game_type,omitempty" db:"game_type"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
