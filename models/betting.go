package models

import (
	"encoding/json"
	"time"
)

type MarketType string

const (
	MarketH2H     MarketType = "h2h"
	MarketSpreads MarketType = "spreads"
	MarketTotals  MarketType = "totals"

	MarketPlayerPassTDs    MarketType = "player_pass_tds"
	MarketPlayerPassYards  MarketType = "player_pass_yds"
	MarketPlayerRushYards  MarketType = "player_rush_yds"
	MarketPlayerRecYards   MarketType = "player_reception_yds"
	MarketPlayerReceptions MarketType = "player_receptions"
	MarketPlayerAnytimeTD  MarketType = "player_anytime_td"
)

type OddsFormat string

const (
	OddsFormatAmerican OddsFormat = "american"
	OddsFormatDecimal  OddsFormat = "decimal"
)

type BookmakerRegion string

const (
	RegionUS BookmakerRegion = "us"
	RegionUK BookmakerRegion = "uk"
	RegionAU BookmakerRegion = "au"
	RegionEU BookmakerRegion = "eu"
)

type Bookmaker struct {
	ID             int             `json:"id" db:"id"`
	Key            string          `json:"key" db:"key"`
	Title          string          `json:"title" db:"title"`
	Region         BookmakerRegion `json:"region" db:"region"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	HasPlayerProps bool            `json:"has_player_props" db:"has_player_props"`
	HasLiveBetting bool            `json:"has_live_betting" db:"has_live_betting"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// GameOdds is one bookmaker's market for one game, with its outcomes.
type GameOdds struct {
	ID                  int        `json:"id" db:"id"`
	NFLGameID           int        `json:"nfl_game_id" db:"nfl_game_id"`
	BookmakerID         int        `json:"bookmaker_id" db:"bookmaker_id"`
	MarketType          MarketType `json:"market_type" db:"market_type"`
	OddsFormat          OddsFormat `json:"odds_format" db:"odds_format"`
	BookmakerLastUpdate time.Time  `json:"bookmaker_last_update" db:"bookmaker_last_update"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`

	Bookmaker *Bookmaker       `json:"bookmaker,omitempty" db:"-"`
	Outcomes  []BettingOutcome `json:"outcomes,omitempty" db:"-"`
}

// BettingOutcome is a single line within a market: a side, its american
// price, and an optional point (spread or total).
type BettingOutcome struct {
	ID          int      `json:"id" db:"id"`
	GameOddsID  int      `json:"game_odds_id" db:"game_odds_id"`
	Name        string   `json:"name" db:"name"`
	Price       float64  `json:"price" db:"price"`
	Point       *float64 `json:"point,omitempty" db:"point"`
	Description *string  `json:"description,omitempty" db:"description"`
	PlayerID    *string  `json:"player_id,omitempty" db:"player_id"`
}

type PlayerPropType struct {
	ID          int    `json:"id" db:"id"`
	Key         string `json:"key" db:"key"`
	DisplayName string `json:"display_name" db:"display_name"`
	Category    string `json:"category" db:"category"`
	StatType    string `json:"stat_type" db:"stat_type"`
	IsActive    bool   `json:"is_active" db:"is_active"`
}

type PlayerProp struct {
	ID                  int       `json:"id" db:"id"`
	NFLGameID           int       `json:"nfl_game_id" db:"nfl_game_id"`
	PlayerID            string    `json:"player_id" db:"player_id"`
	BookmakerID         int       `json:"bookmaker_id" db:"bookmaker_id"`
	PropTypeID          int       `json:"prop_type_id" db:"prop_type_id"`
	Line                *float64  `json:"line,omitempty" db:"line"`
	OverPrice           *float64  `json:"over_price,omitempty" db:"over_price"`
	UnderPrice          *float64  `json:"under_price,omitempty" db:"under_price"`
	IsMainLine          bool      `json:"is_main_line" db:"is_main_line"`
	BookmakerLastUpdate time.Time `json:"bookmaker_last_update" db:"bookmaker_last_update"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`

	PropType  *PlayerPropType `json:"prop_type,omitempty" db:"-"`
	Bookmaker *Bookmaker      `json:"bookmaker,omitempty" db:"-"`
	Player    *Player         `json:"player,omitempty" db:"-"`
}

// OddsSnapshot keeps the raw feed payload for a game so historical lines
// can be replayed later.
type OddsSnapshot struct {
	ID                int             `json:"id" db:"id"`
	NFLGameID         int             `json:"nfl_game_id" db:"nfl_game_id"`
	SnapshotTimestamp time.Time       `json:"snapshot_timestamp" db:"snapshot_timestamp"`
	Source            string          `json:"source" db:"source"`
	RawOddsData       json.RawMessage `json:"raw_odds_data" db:"raw_odds_data"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

type MovementDirection string

const (
	MovementUp      MovementDirection = "up"
	MovementDown    MovementDirection = "down"
	MovementNeutral MovementDirection = "neutral"
)

// OddsMovement records a price or point change for one outcome at one
// bookmaker between two syncs.
type OddsMovement struct {
	ID          int        `json:"id" db:"id"`
	NFLGameID   int        `json:"nfl_game_id" db:"nfl_game_id"`
	BookmakerID int        `json:"bookmaker_id" db:"bookmaker_id"`
	MarketType  MarketType `json:"market_type" db:"market_type"`
	OutcomeName string     `json:"outcome_name" db:"outcome_name"`

	PreviousPrice float64  `json:"previous_price" db:"previous_price"`
	NewPrice      float64  `json:"new_price" db:"new_price"`
	PreviousPoint *float64 `json:"previous_point,omitempty" db:"previous_point"`
	NewPoint      *float64 `json:"new_point,omitempty" db:"new_point"`

	PriceMovementCents int               `json:"price_movement_cents" db:"price_movement_cents"`
	PointMovement      *float64          `json:"point_movement,omitempty" db:"point_movement"`
	Direction          MovementDirection `json:"movement_direction" db:"movement_direction"`
	MovementTimestamp  time.Time         `json:"movement_timestamp" db:"movement_timestamp"`
}

// ConsensusOdds is derived per (game, market, outcome) from every stored
// bookmaker's current line. Rows are replaced wholesale on each sync.
type ConsensusOdds struct {
	ID          int        `json:"id" db:"id"`
	NFLGameID   int        `json:"nfl_game_id" db:"nfl_game_id"`
	MarketType  MarketType `json:"market_type" db:"market_type"`
	OutcomeName string     `json:"outcome_name" db:"outcome_name"`

	AvgPrice    float64 `json:"avg_american_odds" db:"avg_american_odds"`
	MedianPrice float64 `json:"median_american_odds" db:"median_american_odds"`
	BestPrice   float64 `json:"best_odds" db:"best_odds"`
	WorstPrice  float64 `json:"worst_odds" db:"worst_odds"`
	BestBook    string  `json:"best_odds_bookmaker" db:"best_odds_bookmaker"`

	ConsensusPoint   *float64 `json:"consensus_point,omitempty" db:"consensus_point"`
	PointSpreadRange *float64 `json:"point_spread_range,omitempty" db:"point_spread_range"`
	BookmakerCount   int      `json:"bookmaker_count" db:"bookmaker_count"`

	LastCalculated time.Time `json:"last_calculated" db:"last_calculated"`
}
