package models

import "time"

type SeasonType string

const (
	SeasonTypeRegular SeasonType = "REG"
	SeasonTypePost    SeasonType = "POST"
	SeasonTypePre     SeasonType = "PRE"
)

// NFLGame is one scheduled game, keyed for upserts by the event id the
// odds feed assigns to it.
type NFLGame struct {
	ID         int        `json:"id" db:"id"`
	OddsAPIID  string     `json:"odds_api_id" db:"odds_api_id"`
	SportKey   string     `json:"sport_key" db:"sport_key"`
	SportTitle string     `json:"sport_title" db:"sport_title"`
	Season     int        `json:"season" db:"season"`
	Week       *int       `json:"week,omitempty" db:"week"`
	SeasonType SeasonType `json:"season_type" db:"season_type"`

	CommenceTime time.Time `json:"commence_time" db:"commence_time"`
	HomeTeam     string    `json:"home_team" db:"home_team"`
	AwayTeam     string    `json:"away_team" db:"away_team"`
	HomeTeamAbbr *string   `json:"home_team_abbr,omitempty" db:"home_team_abbr"`
	AwayTeamAbbr *string   `json:"away_team_abbr,omitempty" db:"away_team_abbr"`

	IsCompleted bool `json:"is_completed" db:"is_completed"`
	IsLive      bool `json:"is_live" db:"is_live"`
	HomeScore   *int `json:"home_score,omitempty" db:"home_score"`
	AwayScore   *int `json:"away_score,omitempty" db:"away_score"`

	LastOddsUpdate *time.Time `json:"last_odds_update,omitempty" db:"last_odds_update"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
