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
	ErrInjuryNotFound      = errors.New("injury report not found")
	ErrInjuryPlayerInvalid = errors.New("injury report references unknown player")
)

type InjuryRepository interface {
	// Upsert inserts a new report; for a known tweet id only the engagement
	// counters and scraped_at are refreshed. The stored match and
	// verification state is scanned back into the argument.
	Upsert(ctx context.Context, injury *models.SocialMediaInjury) error
	GetByTweetID(ctx context.Context, tweetID int64) (*models.SocialMediaInjury, error)
	List(ctx context.Context, filter models.InjuryFilter) ([]models.SocialMediaInjury, error)
	SetVerification(ctx context.Context, tweetID int64, v models.InjuryVerification) error
	LinkPlayer(ctx context.Context, tweetID int64, playerID string, confidence int) error
}

type postgresInjuryRepository struct {
	db *sql.DB
}

func NewPostgresInjuryRepository(db *sql.DB) InjuryRepository {
	return &postgresInjuryRepository{db: db}
}

const injuryColumns = `tweet_id, author_name, author_username, tweet_text, tweet_url, posted_at,
	player_name, team_abbr, injury_status, body_part, timeline, confidence_score, player_id,
	retweet_count, favorite_count, reply_count, quote_count, verification, scraped_at, processed_at`

func (r *postgresInjuryRepository) Upsert(ctx context.Context, inj *models.SocialMediaInjury) error {
	query := `
		INSERT INTO social_media_injury (tweet_id, author_name, author_username, tweet_text, tweet_url, posted_at,
			player_name, team_abbr, injury_status, body_part, timeline, confidence_score, player_id,
			retweet_count, favorite_count, reply_count, quote_count, verification, scraped_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), $19)
		ON CONFLICT (tweet_id) DO UPDATE SET
			retweet_count = EXCLUDED.retweet_count,
			favorite_count = EXCLUDED.favorite_count,
			reply_count = EXCLUDED.reply_count,
			quote_count = EXCLUDED.quote_count,
			scraped_at = NOW()
		RETURNING player_id, confidence_score, verification, processed_at, scraped_at`

	err := r.db.QueryRowContext(ctx, query,
		inj.TweetID, inj.AuthorName, inj.AuthorUsername, inj.TweetText, inj.TweetURL, inj.PostedAt,
		inj.PlayerName, inj.TeamAbbr, inj.InjuryStatus, inj.BodyPart, inj.Timeline, inj.Confidence, inj.PlayerID,
		inj.RetweetCount, inj.FavoriteCount, inj.ReplyCount, inj.QuoteCount, inj.Verification, inj.ProcessedAt,
	).Scan(&inj.PlayerID, &inj.Confidence, &inj.Verification, &inj.ProcessedAt, &inj.ScrapedAt)

	if err != nil {
		if pqConstraint(err) == "social_media_injury_player_id_fkey" {
			return ErrInjuryPlayerInvalid
		}
		return fmt.Errorf("failed to upsert injury report %d: %w", inj.TweetID, err)
	}
	return nil
}

func (r *postgresInjuryRepository) GetByTweetID(ctx context.Context, tweetID int64) (*models.SocialMediaInjury, error) {
	query := `SELECT ` + injuryColumns + ` FROM social_media_injury WHERE tweet_id = $1`

	inj := &models.SocialMediaInjury{}
	err := scanInjuryRow(r.db.QueryRowContext(ctx, query, tweetID), inj)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInjuryNotFound
		}
		return nil, err
	}
	return inj, nil
}

func (r *postgresInjuryRepository) List(ctx context.Context, filter models.InjuryFilter) ([]models.SocialMediaInjury, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.PlayerID != "" {
		addCondition("player_id = $%d", filter.PlayerID)
	}
	if filter.TeamAbbr != "" {
		addCondition("team_abbr = $%d", filter.TeamAbbr)
	}
	if filter.Verification != "" {
		addCondition("verification = $%d", filter.Verification)
	}
	if filter.Since != nil {
		addCondition("posted_at >= $%d", *filter.Since)
	}

	query := `SELECT ` + injuryColumns + ` FROM social_media_injury`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY posted_at DESC"

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

	injuries := make([]models.SocialMediaInjury, 0)
	for rows.Next() {
		var inj models.SocialMediaInjury
		if err := scanInjuryRow(rows, &inj); err != nil {
			return nil, err
		}
		injuries = append(injuries, inj)
	}
	return injuries, rows.Err()
}

func (r *postgresInjuryRepository) SetVerification(ctx context.Context, tweetID int64, v models.InjuryVerification) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE social_media_injury SET verification = $1, processed_at = NOW() WHERE tweet_id = $2`, v, tweetID)
	if err != nil {
		return fmt.Errorf("failed to set injury verification: %w", err)
	}
	return checkAffectedRows(result, ErrInjuryNotFound)
}

func (r *postgresInjuryRepository) LinkPlayer(ctx context.Context, tweetID int64, playerID string, confidence int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE social_media_injury SET player_id = $1, confidence_score = $2, processed_at = NOW() WHERE tweet_id = $3`,
		playerID, confidence, tweetID)
	if err != nil {
		if pqConstraint(err) == "social_media_injury_player_id_fkey" {
			return ErrInjuryPlayerInvalid
		}
		return fmt.Errorf("failed to link injury report to player: %w", err)
	}
	return checkAffectedRows(result, ErrInjuryNotFound)
}

func scanInjuryRow(row rowScanner, inj *models.SocialMediaInjury) error {
	var processedAt sql.NullTime
	err := row.Scan(
		&inj.TweetID, &inj.AuthorName, &inj.AuthorUsername, &inj.TweetText, &inj.TweetURL, &inj.PostedAt,
		&inj.PlayerName, &inj.TeamAbbr, &inj.InjuryStatus, &inj.BodyPart, &inj.Timeline, &inj.Confidence, &inj.PlayerID,
		&inj.RetweetCount, &inj.FavoriteCount, &inj.ReplyCount, &inj.QuoteCount, &inj.Verification, &inj.ScrapedAt, &processedAt,
	)
	if err != nil {
		return err
	}
	if processedAt.Valid {
		inj.ProcessedAt = &processedAt.Time
	}
	return nil
}
