package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gridironlabs/gridiron-system/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player references unknown team")
)

type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, gsisID string) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	List(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error)
	Delete(ctx context.Context, gsisID string) error
	UpdateHeadshotKey(ctx context.Context, gsisID string, key *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `gsis_id, player_name, first_name, last_name, team_abbr, position, depth_chart_position, status,
	height, weight, birth_date, jersey_number, years_exp, entry_year, college, draft_number, draft_club,
	season, week, espn_id, pfr_id, pff_id, sleeper_id, sportradar_id, headshot_key, created_at, updated_at`

func (r *postgresPlayerRepository) Upsert(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO player (gsis_id, player_name, first_name, last_name, team_abbr, position, depth_chart_position, status,
			height, weight, birth_date, jersey_number, years_exp, entry_year, college, draft_number, draft_club,
			season, week, espn_id, pfr_id, pff_id, sleeper_id, sportradar_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (gsis_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			team_abbr = EXCLUDED.team_abbr,
			position = EXCLUDED.position,
			depth_chart_position = EXCLUDED.depth_chart_position,
			status = EXCLUDED.status,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			birth_date = EXCLUDED.birth_date,
			jersey_number = EXCLUDED.jersey_number,
			years_exp = EXCLUDED.years_exp,
			entry_year = EXCLUDED.entry_year,
			college = EXCLUDED.college,
			draft_number = EXCLUDED.draft_number,
			draft_club = EXCLUDED.draft_club,
			season = EXCLUDED.season,
			week = EXCLUDED.week,
			espn_id = EXCLUDED.espn_id,
			pfr_id = EXCLUDED.pfr_id,
			pff_id = EXCLUDED.pff_id,
			sleeper_id = EXCLUDED.sleeper_id,
			sportradar_id = EXCLUDED.sportradar_id,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.GSISID, p.Name, p.FirstName, p.LastName, p.TeamAbbr, p.Position, p.DepthChartPosition, p.Status,
		p.Height, p.Weight, p.BirthDate, p.Jersey, p.YearsExp, p.EntryYear, p.College, p.DraftPick, p.DraftClub,
		p.Season, p.Week, p.ESPNID, p.PFRID, p.PFFID, p.SleeperID, p.SportradarID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if pqConstraint(err) == "player_team_abbr_fkey" {
			return ErrPlayerTeamInvalid
		}
		return fmt.Errorf("failed to upsert player %s: %w", p.GSISID, err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, gsisID string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM player WHERE gsis_id = $1`
	return r.scanPlayer(ctx, query, gsisID)
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM player WHERE LOWER(player_name) = LOWER($1)`
	return r.scanPlayer(ctx, query, name)
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.TeamAbbr != "" {
		addCondition("team_abbr = $%d", filter.TeamAbbr)
	}
	if filter.Position != "" {
		addCondition("position = $%d", filter.Position)
	}
	if filter.Status != "" {
		addCondition("status = $%d", filter.Status)
	}
	if filter.Search != "" {
		addCondition("player_name ILIKE $%d", "%"+filter.Search+"%")
	}

	query := `SELECT ` + playerColumns + ` FROM player`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY player_name ASC"

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayerRow(rows, &p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, gsisID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM player WHERE gsis_id = $1`, gsisID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateHeadshotKey(ctx context.Context, gsisID string, key *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE player SET headshot_key = $1, updated_at = NOW() WHERE gsis_id = $2`, key, gsisID)
	if err != nil {
		return fmt.Errorf("failed to update headshot key: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) scanPlayer(ctx context.Context, query string, args ...interface{}) (*models.Player, error) {
	p := &models.Player{}
	err := scanPlayerRow(r.db.QueryRowContext(ctx, query, args...), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanPlayerRow(row rowScanner, p *models.Player) error {
	return row.Scan(
		&p.GSISID, &p.Name, &p.FirstName, &p.LastName, &p.TeamAbbr, &p.Position, &p.DepthChartPosition, &p.Status,
		&p.Height, &p.Weight, &p.BirthDate, &p.Jersey, &p.YearsExp, &p.EntryYear, &p.College, &p.DraftPick, &p.DraftClub,
		&p.Season, &p.Week, &p.ESPNID, &p.PFRID, &p.PFFID, &p.SleeperID, &p.SportradarID, &p.HeadshotKey,
		&p.CreatedAt, &p.UpdatedAt,
	)
}
