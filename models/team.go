package models

import "time"

type Conference string

const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

type Team struct {
	Abbr       string     `json:"team_abbr" db:"team_abbr"`
	Name       string     `json:"team_name" db:"team_name"`
	NFLTeamID  int        `json:"team_id" db:"team_id"`
	Nick       *string    `json:"team_nick,omitempty" db:"team_nick"`
	Conference Conference `json:"team_conf" db:"team_conf"`
	Division   string     `json:"team_division" db:"team_division"`
	Color      *string    `json:"team_color,omitempty" db:"team_color"`
	Color2     *string    `json:"team_color2,omitempty" db:"team_color2"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`

	Players []Player `json:"players,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
