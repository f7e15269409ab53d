package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridironlabs/gridiron-system/models"
)

var (
	ErrRosterEntryNotFound = errors.New("roster entry not found")
	ErrRosterPlayerInvalid = errors.New("roster entry references unknown player")
)

type RosterRepository interface {
	// UpsertWeek inserts or refreshes the entry for (player, season, week).
	UpsertWeek(ctx context.Context, entry *models.PlayerWeekRoster) error
	ListByPlayerSeason(ctx context.Context, playerID string, season int) ([]models.PlayerWeekRoster, error)
	ListByTeamWeek(ctx context.Context, teamAbbr string, season, week int) ([]models.PlayerWeekRoster, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

const rosterColumns = `id, player_id, season, week, team_abbr, position, depth_chart_position, jersey_number, status, game_type, created_at, updated_at`

func (r *postgresRosterRepository) UpsertWeek(ctx context.Context, e *models.PlayerWeekRoster) error {
	query := `
		INSERT INTO playerweekroster (player_id, season, week, team_abbr, position, depth_chart_position, jersey_number, status, game_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (player_id, season, week) DO UPDATE SET
			team_abbr = EXCLUDED.team_abbr,
			position = EXCLUDED.position,
			depth_chart_position = EXCLUDED.depth_chart_position,
			jersey_number = EXCLUDED.jersey_number,
			status = EXCLUDED.status,
			game_type = EXCLUDED.game_type,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		e.PlayerID, e.Season, e.Week, e.TeamAbbr, e.Position,
		e.DepthChartPosition, e.Jersey, e.Status, e.GameType,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		if pqConstraint(err) == "playerweekroster_player_id_fkey" {
			return ErrRosterPlayerInvalid
		}
		return fmt.Errorf("failed to upsert roster entry: %w", err)
	}
	return nil
}

func (r *postgresRosterRepository) ListByPlayerSeason(ctx context.Context, playerID string, season int) ([]models.PlayerWeekRoster, error) {
	query := `SELECT ` + rosterColumns + ` FROM playerweekroster WHERE player_id = $1 AND season = $2 ORDER BY week ASC`
	return r.list(ctx, query, playerID, season)
}

func (r *postgresRosterRepository) ListByTeamWeek(ctx context.Context, teamAbbr string, season, week int) ([]models.PlayerWeekRoster, error) {
	query := `SELECT ` + rosterColumns + ` FROM playerweekroster WHERE team_abbr = $1 AND season = $2 AND week = $3 ORDER BY position, jersey_number`
	return r.list(ctx, query, teamAbbr, season, week)
}

func (r *postgresRosterRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.PlayerWeekRoster, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.PlayerWeekRoster, 0)
	for rows.Next() {
		var e models.PlayerWeekRoster
		err := rows.Scan(
			&e.ID, &e.PlayerID, &e.Season, &e.Week, &e.TeamAbbr, &e.Position,
			&e.DepthChartPosition, &e.Jersey, &e.Status, &e.GameType,
			&e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
