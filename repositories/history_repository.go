package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridironlabs/gridiron-system/models"
)

// OddsHistoryRepository persists the derived/historical side of odds:
// raw snapshots, per-book line movements and recomputed consensus rows.
type OddsHistoryRepository interface {
	InsertSnapshot(ctx context.Context, snapshot *models.OddsSnapshot) error
	InsertMovements(ctx context.Context, exec SQLExecutor, movements []models.OddsMovement) error
	ReplaceConsensusForGame(ctx context.Context, exec SQLExecutor, gameID int, rows []models.ConsensusOdds) error
	ListMovementsByGame(ctx context.Context, gameID int, limit int) ([]models.OddsMovement, error)
	ListConsensusByGame(ctx context.Context, gameID int) ([]models.ConsensusOdds, error)
}

type postgresOddsHistoryRepository struct {
	db *sql.DB
}

func NewPostgresOddsHistoryRepository(db *sql.DB) OddsHistoryRepository {
	return &postgresOddsHistoryRepository{db: db}
}

func (r *postgresOddsHistoryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresOddsHistoryRepository) InsertSnapshot(ctx context.Context, s *models.OddsSnapshot) error {
	query := `
		INSERT INTO oddssnapshot (nfl_game_id, snapshot_timestamp, source, raw_odds_data)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		s.NFLGameID, s.SnapshotTimestamp, s.Source, []byte(s.RawOddsData),
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert odds snapshot: %w", err)
	}
	return nil
}

func (r *postgresOddsHistoryRepository) InsertMovements(ctx context.Context, exec SQLExecutor, movements []models.OddsMovement) error {
	e := r.getExecutor(exec)

	query := `
		INSERT INTO oddsmovement (nfl_game_id, bookmaker_id, market_type, outcome_name,
			previous_price, new_price, previous_point, new_point,
			price_movement_cents, point_movement, movement_direction, movement_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	for i := range movements {
		m := &movements[i]
		err := e.QueryRowContext(ctx, query,
			m.NFLGameID, m.BookmakerID, m.MarketType, m.OutcomeName,
			m.PreviousPrice, m.NewPrice, m.PreviousPoint, m.NewPoint,
			m.PriceMovementCents, m.PointMovement, m.Direction, m.MovementTimestamp,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to insert odds movement: %w", err)
		}
	}
	return nil
}

func (r *postgresOddsHistoryRepository) ReplaceConsensusForGame(ctx context.Context, exec SQLExecutor, gameID int, rows []models.ConsensusOdds) error {
	e := r.getExecutor(exec)

	if _, err := e.ExecContext(ctx, `DELETE FROM consensusodds WHERE nfl_game_id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to clear consensus for game %d: %w", gameID, err)
	}

	query := `
		INSERT INTO consensusodds (nfl_game_id, market_type, outcome_name,
			avg_american_odds, median_american_odds, best_odds, worst_odds, best_odds_bookmaker,
			consensus_point, point_spread_range, bookmaker_count, last_calculated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	for i := range rows {
		c := &rows[i]
		c.NFLGameID = gameID
		err := e.QueryRowContext(ctx, query,
			c.NFLGameID, c.MarketType, c.OutcomeName,
			c.AvgPrice, c.MedianPrice, c.BestPrice, c.WorstPrice, c.BestBook,
			c.ConsensusPoint, c.PointSpreadRange, c.BookmakerCount, c.LastCalculated,
		).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("failed to insert consensus row: %w", err)
		}
	}
	return nil
}

func (r *postgresOddsHistoryRepository) ListMovementsByGame(ctx context.Context, gameID int, limit int) ([]models.OddsMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `
		SELECT id, nfl_game_id, bookmaker_id, market_type, outcome_name,
			previous_price, new_price, previous_point, new_point,
			price_movement_cents, point_movement, movement_direction, movement_timestamp
		FROM oddsmovement
		WHERE nfl_game_id = $1
		ORDER BY movement_timestamp DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, gameID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]models.OddsMovement, 0)
	for rows.Next() {
		var m models.OddsMovement
		err := rows.Scan(
			&m.ID, &m.NFLGameID, &m.BookmakerID, &m.MarketType, &m.OutcomeName,
			&m.PreviousPrice, &m.NewPrice, &m.PreviousPoint, &m.NewPoint,
			&m.PriceMovementCents, &m.PointMovement, &m.Direction, &m.MovementTimestamp,
		)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *postgresOddsHistoryRepository) ListConsensusByGame(ctx context.Context, gameID int) ([]models.ConsensusOdds, error) {
	query := `
		SELECT id, nfl_game_id, market_type, outcome_name,
			avg_american_odds, median_american_odds, best_odds, worst_odds, best_odds_bookmaker,
			consensus_point, point_spread_range, bookmaker_count, last_calculated
		FROM consensusodds
		WHERE nfl_game_id = $1
		ORDER BY market_type, outcome_name`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consensus := make([]models.ConsensusOdds, 0)
	for rows.Next() {
		var c models.ConsensusOdds
		err := rows.Scan(
			&c.ID, &c.NFLGameID, &c.MarketType, &c.OutcomeName,
			&c.AvgPrice, &c.MedianPrice, &c.BestPrice, &c.WorstPrice, &c.BestBook,
			&c.ConsensusPoint, &c.PointSpreadRange, &c.BookmakerCount, &c.LastCalculated,
		)
		if err != nil {
			return nil, err
		}
		consensus = append(consensus, c)
	}
	return consensus, rows.Err()
}
