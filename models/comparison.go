package models

import "time"

// OddsComparison is the line-shopping view of a single game: for every
// market, the best available price per side and the full board.

type OddsComparison struct {
	GameID       int                  `json:"game_id"`
	HomeTeam     string               `json:"home_team"`
	AwayTeam     string               `json:"away_team"`
	CommenceTime time.Time            `json:"commence_time"`
	Moneyline    *MoneylineComparison `json:"moneyline,omitempty"`
	Spread       *SpreadComparison    `json:"spread,omitempty"`
	Total        *TotalComparison     `json:"total,omitempty"`
}

type BestLine struct {
	Price     float64  `json:"price"`
	Point     *float64 `json:"point,omitempty"`
	Bookmaker string   `json:"bookmaker"`
}

type BookLine struct {
	Bookmaker string   `json:"bookmaker"`
	Price     float64  `json:"price"`
	Point     *float64 `json:"point,omitempty"`
}

type MoneylineComparison struct {
	BestHome BestLine            `json:"best_home"`
	BestAway BestLine            `json:"best_away"`
	Board    map[string][]BookLine `json:"board"`
}

type SpreadComparison struct {
	BestHome BestLine            `json:"best_home"`
	BestAway BestLine            `json:"best_away"`
	Board    map[string][]BookLine `json:"board"`
}

type TotalComparison struct {
	BestOver  BestLine            `json:"best_over"`
	BestUnder BestLine            `json:"best_under"`
	Board     map[string][]BookLine `json:"board"`
}
