package models

import "time"

// PlayerStatus values follow the NFL roster status abbreviations
// (ACT, RES, SUS, PUP, ...); the common ones get named constants.
type PlayerStatus string

const (
	PlayerStatusActive    PlayerStatus = "ACT"
	PlayerStatusReserve   PlayerStatus = "RES"
	PlayerStatusSuspended PlayerStatus = "SUS"
	PlayerStatusPractice  PlayerStatus = "DEV"
)

type Player struct {
	// GSISID is the league-wide player identifier and the primary key.
	GSISID    string  `json:"gsis_id" db:"gsis_id"`
	Name      string  `json:"player_name" db:"player_name"`
	FirstName *string `json:"first_name,omitempty" db:"first_name"`
	LastName  *string `json:"last_name,omitempty" db:"last_name"`
	TeamAbbr  *string `json:"team,omitempty" db:"team_abbr"`

	Position           string  `json:"position" db:"position"`
	DepthChartPosition *string `json:"depth_chart_position,omitempty" db:"depth_chart_position"`
	Status             *string `json:"status,omitempty" db:"status"`

	Height    *float64   `json:"height,omitempty" db:"height"`
	Weight    *int       `json:"weight,omitempty" db:"weight"`
	BirthDate *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Jersey    *int       `json:"jersey_number,omitempty" db:"jersey_number"`

	YearsExp  *int    `json:"years_exp,omitempty" db:"years_exp"`
	EntryYear *int    `json:"entry_year,omitempty" db:"entry_year"`
	College   *string `json:"college,omitempty" db:"college"`
	DraftPick *int    `json:"draft_number,omitempty" db:"draft_number"`
	DraftClub *string `json:"draft_club,omitempty" db:"draft_club"`

	Season *int `json:"season,omitempty" db:"season"`
	Week   *int `json:"week,omitempty" db:"week"`

	// External identifiers kept for joins against third-party feeds.
	ESPNID       *string `json:"espn_id,omitempty" db:"espn_id"`
	PFRID        *string `json:"pfr_id,omitempty" db:"pfr_id"`
	PFFID        *string `json:"pff_id,omitempty" db:"pff_id"`
	SleeperID    *string `json:"sleeper_id,omitempty" db:"sleeper_id"`
	SportradarID *string `json:"sportradar_id,omitempty" db:"sportradar_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team_detail,omitempty" db:"-"`

	HeadshotKey *string `json:"-" db:"headshot_key"`
	HeadshotURL *string `json:"headshot_url,omitempty" db:"-"`
}

// PlayerFilter narrows player listings. Zero values mean "no filter".
type PlayerFilter struct {
	TeamAbbr string
	Position string
	Status   string
	Search   string
	Limit    int
	Offset   int
}
