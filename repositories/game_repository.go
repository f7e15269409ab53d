package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gridironlabs/gridiron-system/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	// UpsertByOddsAPIID inserts or updates the game row keyed by the
	// external event id, filling ID and timestamps on the model.
	UpsertByOddsAPIID(ctx context.Context, game *models.NFLGame) error
	GetByID(ctx context.Context, id int) (*models.NFLGame, error)
	GetByOddsAPIID(ctx context.Context, oddsAPIID string) (*models.NFLGame, error)
	ListUpcoming(ctx context.Context, limit int) ([]models.NFLGame, error)
	ListBySeasonWeek(ctx context.Context, season, week int) ([]models.NFLGame, error)
	TouchOddsUpdate(ctx context.Context, id int, at time.Time) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, odds_api_id, sport_key, sport_title, season, week, season_type, commence_time,
	home_team, away_team, home_team_abbr, away_team_abbr, is_completed, is_live, home_score, away_score,
	last_odds_update, created_at, updated_at`

func (r *postgresGameRepository) UpsertByOddsAPIID(ctx context.Context, g *models.NFLGame) error {
	query := `
		INSERT INTO nfl_game (odds_api_id, sport_key, sport_title, season, week, season_type, commence_time,
			home_team, away_team, home_team_abbr, away_team_abbr, is_completed, is_live, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (odds_api_id) DO UPDATE SET
			season = EXCLUDED.season,
			week = EXCLUDED.week,
			season_type = EXCLUDED.season_type,
			commence_time = EXCLUDED.commence_time,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			home_team_abbr = EXCLUDED.home_team_abbr,
			away_team_abbr = EXCLUDED.away_team_abbr,
			is_completed = EXCLUDED.is_completed,
			is_live = EXCLUDED.is_live,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		g.OddsAPIID, g.SportKey, g.SportTitle, g.Season, g.Week, g.SeasonType, g.CommenceTime,
		g.HomeTeam, g.AwayTeam, g.HomeTeamAbbr, g.AwayTeamAbbr, g.IsCompleted, g.IsLive, g.HomeScore, g.AwayScore,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", g.OddsAPIID, err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.NFLGame, error) {
	query := `SELECT ` + gameColumns + ` FROM nfl_game WHERE id = $1`
	return r.scanGame(ctx, query, id)
}

func (r *postgresGameRepository) GetByOddsAPIID(ctx context.Context, oddsAPIID string) (*models.NFLGame, error) {
	query := `SELECT ` + gameColumns + ` FROM nfl_game WHERE odds_api_id = $1`
	return r.scanGame(ctx, query, oddsAPIID)
}

func (r *postgresGameRepository) ListUpcoming(ctx context.Context, limit int) ([]models.NFLGame, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT ` + gameColumns + ` FROM nfl_game
		WHERE is_completed = FALSE AND commence_time > NOW() - INTERVAL '6 hours'
		ORDER BY commence_time ASC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *postgresGameRepository) ListBySeasonWeek(ctx context.Context, season, week int) ([]models.NFLGame, error) {
	query := `SELECT ` + gameColumns + ` FROM nfl_game WHERE season = $1 AND week = $2 ORDER BY commence_time ASC`
	return r.list(ctx, query, season, week)
}

func (r *postgresGameRepository) TouchOddsUpdate(ctx context.Context, id int, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE nfl_game SET last_odds_update = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch odds update: %w", err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) scanGame(ctx context.Context, query string, args ...interface{}) (*models.NFLGame, error) {
	g := &models.NFLGame{}
	err := scanGameRow(r.db.QueryRowContext(ctx, query, args...), g)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *postgresGameRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.NFLGame, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.NFLGame, 0)
	for rows.Next() {
		var g models.NFLGame
		if err := scanGameRow(rows, &g); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func scanGameRow(row rowScanner, g *models.NFLGame) error {
	var lastOddsUpdate sql.NullTime
	err := row.Scan(
		&g.ID, &g.OddsAPIID, &g.SportKey, &g.SportTitle, &g.Season, &g.Week, &g.SeasonType, &g.CommenceTime,
		&g.HomeTeam, &g.AwayTeam, &g.HomeTeamAbbr, &g.AwayTeamAbbr, &g.IsCompleted, &g.IsLive, &g.HomeScore, &g.AwayScore,
		&lastOddsUpdate, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if lastOddsUpdate.Valid {
		g.LastOddsUpdate = &lastOddsUpdate.Time
	}
	return nil
}
