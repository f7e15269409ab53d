package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridironlabs/gridiron-system/models"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrTeamIDConflict = errors.New("team id conflict")
)

type TeamRepository interface {
	Upsert(ctx context.Context, team *models.Team) error
	GetByAbbr(ctx context.Context, abbr string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	UpdateLogoKey(ctx context.Context, abbr string, key *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `team_abbr, team_name, team_id, team_nick, team_conf, team_division, team_color, team_color2, logo_key, created_at, updated_at`

func (r *postgresTeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO team (team_abbr, team_name, team_id, team_nick, team_conf, team_division, team_color, team_color2)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (team_abbr) DO UPDATE SET
			team_name = EXCLUDED.team_name,
			team_id = EXCLUDED.team_id,
			team_nick = EXCLUDED.team_nick,
			team_conf = EXCLUDED.team_conf,
			team_division = EXCLUDED.team_division,
			team_color = EXCLUDED.team_color,
			team_color2 = EXCLUDED.team_color2,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Abbr,
		team.Name,
		team.NFLTeamID,
		team.Nick,
		team.Conference,
		team.Division,
		team.Color,
		team.Color2,
	).Scan(&team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		if pqConstraint(err) == "team_team_id_key" {
			return ErrTeamIDConflict
		}
		return fmt.Errorf("failed to upsert team %s: %w", team.Abbr, err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByAbbr(ctx context.Context, abbr string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM team WHERE team_abbr = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, abbr).Scan(
		&team.Abbr,
		&team.Name,
		&team.NFLTeamID,
		&team.Nick,
		&team.Conference,
		&team.Division,
		&team.Color,
		&team.Color2,
		&team.LogoKey,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM team ORDER BY team_conf, team_division, team_abbr`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.Abbr,
			&team.Name,
			&team.NFLTeamID,
			&team.Nick,
			&team.Conference,
			&team.Division,
			&team.Color,
			&team.Color2,
			&team.LogoKey,
			&team.CreatedAt,
			&team.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, abbr string, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE team SET logo_key = $1, updated_at = NOW() WHERE team_abbr = $2`, key, abbr)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
