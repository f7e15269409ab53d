package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridironlabs/gridiron-system/models"
)

var ErrBookmakerNotFound = errors.New("bookmaker not found")

type BookmakerRepository interface {
	Upsert(ctx context.Context, bookmaker *models.Bookmaker) error
	GetByKey(ctx context.Context, key string) (*models.Bookmaker, error)
	List(ctx context.Context, activeOnly bool) ([]models.Bookmaker, error)
}

type postgresBookmakerRepository struct {
	db *sql.DB
}

func NewPostgresBookmakerRepository(db *sql.DB) BookmakerRepository {
	return &postgresBookmakerRepository{db: db}
}

const bookmakerColumns = `id, key, title, region, is_active, has_player_props, has_live_betting, created_at, updated_at`

func (r *postgresBookmakerRepository) Upsert(ctx context.Context, b *models.Bookmaker) error {
	query := `
		INSERT INTO bookmaker (key, title, region, is_active, has_player_props, has_live_betting)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE SET
			title = EXCLUDED.title,
			region = EXCLUDED.region,
			is_active = EXCLUDED.is_active,
			has_player_props = EXCLUDED.has_player_props,
			has_live_betting = EXCLUDED.has_live_betting,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		b.Key, b.Title, b.Region, b.IsActive, b.HasPlayerProps, b.HasLiveBetting,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert bookmaker %s: %w", b.Key, err)
	}
	return nil
}

func (r *postgresBookmakerRepository) GetByKey(ctx context.Context, key string) (*models.Bookmaker, error) {
	query := `SELECT ` + bookmakerColumns + ` FROM bookmaker WHERE key = $1`

	b := &models.Bookmaker{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&b.ID, &b.Key, &b.Title, &b.Region, &b.IsActive, &b.HasPlayerProps, &b.HasLiveBetting,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookmakerNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *postgresBookmakerRepository) List(ctx context.Context, activeOnly bool) ([]models.Bookmaker, error) {
	query := `SELECT ` + bookmakerColumns + ` FROM bookmaker`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY key ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmakers := make([]models.Bookmaker, 0)
	for rows.Next() {
		var b models.Bookmaker
		err := rows.Scan(
			&b.ID, &b.Key, &b.Title, &b.Region, &b.IsActive, &b.HasPlayerProps, &b.HasLiveBetting,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookmakers = append(bookmakers, b)
	}
	return bookmakers, rows.Err()
}
