package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridironlabs/gridiron-system/models"
)

var (
	ErrPropTypeNotFound      = errors.New("prop type not found")
	ErrPlayerPropNotFound    = errors.New("player prop not found")
	ErrPlayerPropPlayerUnset = errors.New("player prop references unknown player")
)

type PropRepository interface {
	UpsertPropType(ctx context.Context, propType *models.PlayerPropType) error
	GetPropTypeByKey(ctx context.Context, key string) (*models.PlayerPropType, error)
	ListPropTypes(ctx context.Context, activeOnly bool) ([]models.PlayerPropType, error)

	// UpsertMainLine refreshes the single main line per
	// (game, player, bookmaker, prop type).
	UpsertMainLine(ctx context.Context, prop *models.PlayerProp) error
	ListByGame(ctx context.Context, gameID int) ([]models.PlayerProp, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]models.PlayerProp, error)
}

type postgresPropRepository struct {
	db *sql.DB
}

func NewPostgresPropRepository(db *sql.DB) PropRepository {
	return &postgresPropRepository{db: db}
}

func (r *postgresPropRepository) UpsertPropType(ctx context.Context, pt *models.PlayerPropType) error {
	query := `
		INSERT INTO playerproptype (key, display_name, category, stat_type, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			category = EXCLUDED.category,
			stat_type = EXCLUDED.stat_type,
			is_active = EXCLUDED.is_active
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, pt.Key, pt.DisplayName, pt.Category, pt.StatType, pt.IsActive).Scan(&pt.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert prop type %s: %w", pt.Key, err)
	}
	return nil
}

func (r *postgresPropRepository) GetPropTypeByKey(ctx context.Context, key string) (*models.PlayerPropType, error) {
	query := `SELECT id, key, display_name, category, stat_type, is_active FROM playerproptype WHERE key = $1`

	pt := &models.PlayerPropType{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&pt.ID, &pt.Key, &pt.DisplayName, &pt.Category, &pt.StatType, &pt.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropTypeNotFound
		}
		return nil, err
	}
	return pt, nil
}

func (r *postgresPropRepository) ListPropTypes(ctx context.Context, activeOnly bool) ([]models.PlayerPropType, error) {
	query := `SELECT id, key, display_name, category, stat_type, is_active FROM playerproptype`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY key`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]models.PlayerPropType, 0)
	for rows.Next() {
		var pt models.PlayerPropType
		if err := rows.Scan(&pt.ID, &pt.Key, &pt.DisplayName, &pt.Category, &pt.StatType, &pt.IsActive); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

func (r *postgresPropRepository) UpsertMainLine(ctx context.Context, p *models.PlayerProp) error {
	query := `
		INSERT INTO playerprop (nfl_game_id, player_id, bookmaker_id, prop_type_id,
			line, over_price, under_price, is_main_line, bookmaker_last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
		ON CONFLICT (nfl_game_id, player_id, bookmaker_id, prop_type_id) WHERE is_main_line DO UPDATE SET
			line = EXCLUDED.line,
			over_price = EXCLUDED.over_price,
			under_price = EXCLUDED.under_price,
			bookmaker_last_update = EXCLUDED.bookmaker_last_update,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.NFLGameID, p.PlayerID, p.BookmakerID, p.PropTypeID,
		p.Line, p.OverPrice, p.UnderPrice, p.BookmakerLastUpdate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if pqConstraint(err) == "playerprop_player_id_fkey" {
			return ErrPlayerPropPlayerUnset
		}
		return fmt.Errorf("failed to upsert player prop: %w", err)
	}
	p.IsMainLine = true
	return nil
}

const propSelect = `
	SELECT pp.id, pp.nfl_game_id, pp.player_id, pp.bookmaker_id, pp.prop_type_id,
		pp.line, pp.over_price, pp.under_price, pp.is_main_line, pp.bookmaker_last_update,
		pp.created_at, pp.updated_at,
		pt.id, pt.key, pt.display_name, pt.category, pt.stat_type, pt.is_active,
		b.id, b.key, b.title, b.region, b.is_active, b.has_player_props, b.has_live_betting, b.created_at, b.updated_at
	FROM playerprop pp
	JOIN playerproptype pt ON pt.id = pp.prop_type_id
	JOIN bookmaker b ON b.id = pp.bookmaker_id`

func (r *postgresPropRepository) ListByGame(ctx context.Context, gameID int) ([]models.PlayerProp, error) {
	query := propSelect + ` WHERE pp.nfl_game_id = $1 ORDER BY pp.player_id, pt.key, b.key`
	return r.list(ctx, query, gameID)
}

func (r *postgresPropRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]models.PlayerProp, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := propSelect + ` WHERE pp.player_id = $1 ORDER BY pp.updated_at DESC LIMIT $2`
	return r.list(ctx, query, playerID, limit)
}

func (r *postgresPropRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.PlayerProp, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props := make([]models.PlayerProp, 0)
	for rows.Next() {
		var p models.PlayerProp
		var pt models.PlayerPropType
		var b models.Bookmaker
		err := rows.Scan(
			&p.ID, &p.NFLGameID, &p.PlayerID, &p.BookmakerID, &p.PropTypeID,
			&p.Line, &p.OverPrice, &p.UnderPrice, &p.IsMainLine, &p.BookmakerLastUpdate,
			&p.CreatedAt, &p.UpdatedAt,
			&pt.ID, &pt.Key, &pt.DisplayName, &pt.Category, &pt.StatType, &pt.IsActive,
			&b.ID, &b.Key, &b.Title, &b.Region, &b.IsActive, &b.HasPlayerProps, &b.HasLiveBetting, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		p.PropType = &pt
		p.Bookmaker = &b
		props = append(props, p)
	}
	return props, rows.Err()
}
