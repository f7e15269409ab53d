package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridironlabs/gridiron-system/models"
)

var ErrGameOddsNotFound = errors.New("game odds not found")

// StoredOutcome is the flattened view of one bookmaker's current line for
// one outcome, used to diff syncs into movements.
type StoredOutcome struct {
	BookmakerID  int
	BookmakerKey string
	MarketType   models.MarketType
	OutcomeName  string
	Price        float64
	Point        *float64
}

type GameOddsRepository interface {
	// ReplaceForGame drops the game's stored odds and writes the new set.
	// Callers pass a transaction when movements must land atomically.
	ReplaceForGame(ctx context.Context, exec SQLExecutor, gameID int, odds []models.GameOdds) error
	ListByGame(ctx context.Context, gameID int) ([]models.GameOdds, error)
	// CurrentOutcomes returns the stored lines for a game keyed for
	// movement diffing.
	CurrentOutcomes(ctx context.Context, gameID int) ([]StoredOutcome, error)
}

type postgresGameOddsRepository struct {
	db *sql.DB
}

func NewPostgresGameOddsRepository(db *sql.DB) GameOddsRepository {
	return &postgresGameOddsRepository{db: db}
}

func (r *postgresGameOddsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameOddsRepository) ReplaceForGame(ctx context.Context, exec SQLExecutor, gameID int, odds []models.GameOdds) error {
	e := r.getExecutor(exec)

	// Outcomes cascade from gameodds.
	if _, err := e.ExecContext(ctx, `DELETE FROM gameodds WHERE nfl_game_id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to clear odds for game %d: %w", gameID, err)
	}

	insertOdds := `
		INSERT INTO gameodds (nfl_game_id, bookmaker_id, market_type, odds_format, bookmaker_last_update)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	insertOutcome := `
		INSERT INTO bettingoutcome (game_odds_id, name, price, point, description, player_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range odds {
		o := &odds[i]
		o.NFLGameID = gameID
		err := e.QueryRowContext(ctx, insertOdds,
			o.NFLGameID, o.BookmakerID, o.MarketType, o.OddsFormat, o.BookmakerLastUpdate,
		).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert game odds: %w", err)
		}

		for j := range o.Outcomes {
			out := &o.Outcomes[j]
			out.GameOddsID = o.ID
			err := e.QueryRowContext(ctx, insertOutcome,
				out.GameOddsID, out.Name, out.Price, out.Point, out.Description, out.PlayerID,
			).Scan(&out.ID)
			if err != nil {
				return fmt.Errorf("failed to insert betting outcome: %w", err)
			}
		}
	}
	return nil
}

func (r *postgresGameOddsRepository) ListByGame(ctx context.Context, gameID int) ([]models.GameOdds, error) {
	query := `
		SELECT
			go.id, go.nfl_game_id, go.bookmaker_id, go.market_type, go.odds_format, go.bookmaker_last_update, go.created_at,
			b.id, b.key, b.title, b.region, b.is_active, b.has_player_props, b.has_live_betting, b.created_at, b.updated_at
		FROM gameodds go
		JOIN bookmaker b ON b.id = go.bookmaker_id
		WHERE go.nfl_game_id = $1
		ORDER BY go.market_type, b.key`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	odds := make([]models.GameOdds, 0)
	byID := make(map[int]int) // gameodds id -> index in odds
	for rows.Next() {
		var o models.GameOdds
		var b models.Bookmaker
		err := rows.Scan(
			&o.ID, &o.NFLGameID, &o.BookmakerID, &o.MarketType, &o.OddsFormat, &o.BookmakerLastUpdate, &o.CreatedAt,
			&b.ID, &b.Key, &b.Title, &b.Region, &b.IsActive, &b.HasPlayerProps, &b.HasLiveBetting, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		o.Bookmaker = &b
		byID[o.ID] = len(odds)
		odds = append(odds, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(odds) == 0 {
		return odds, nil
	}

	outcomes := `
		SELECT bo.id, bo.game_odds_id, bo.name, bo.price, bo.point, bo.description, bo.player_id
		FROM bettingoutcome bo
		JOIN gameodds go ON go.id = bo.game_odds_id
		WHERE go.nfl_game_id = $1
		ORDER BY bo.id`

	oRows, err := r.db.QueryContext(ctx, outcomes, gameID)
	if err != nil {
		return nil, err
	}
	defer oRows.Close()

	for oRows.Next() {
		var out models.BettingOutcome
		err := oRows.Scan(&out.ID, &out.GameOddsID, &out.Name, &out.Price, &out.Point, &out.Description, &out.PlayerID)
		if err != nil {
			return nil, err
		}
		if idx, ok := byID[out.GameOddsID]; ok {
			odds[idx].Outcomes = append(odds[idx].Outcomes, out)
		}
	}
	return odds, oRows.Err()
}

func (r *postgresGameOddsRepository) CurrentOutcomes(ctx context.Context, gameID int) ([]StoredOutcome, error) {
	query := `
		SELECT go.bookmaker_id, b.key, go.market_type, bo.name, bo.price, bo.point
		FROM bettingoutcome bo
		JOIN gameodds go ON go.id = bo.game_odds_id
		JOIN bookmaker b ON b.id = go.bookmaker_id
		WHERE go.nfl_game_id = $1`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make([]StoredOutcome, 0)
	for rows.Next() {
		var s StoredOutcome
		if err := rows.Scan(&s.BookmakerID, &s.BookmakerKey, &s.MarketType, &s.OutcomeName, &s.Price, &s.Point); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, s)
	}
	return outcomes, rows.Err()
}
