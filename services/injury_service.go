package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
	"github.com/gridironlabs/gridiron-system/sportsdata"
)

// exactNameMatchConfidence is assigned when an extracted player name
// matches exactly one roster entry.
const exactNameMatchConfidence = 100

// TweetInput is one scraped beat-writer tweet with the fields the
// extraction pipeline pulled out of it.
type TweetInput struct {
	TweetID        int64     `json:"tweet_id,string"`
	AuthorName     string    `json:"author_name"`
	AuthorUsername string    `json:"author_username"`
	TweetText      string    `json:"tweet_text"`
	TweetURL       *string   `json:"tweet_url"`
	PostedAt       time.Time `json:"posted_at"`

	PlayerName   *string `json:"player_name"`
	TeamAbbr     *string `json:"team_abbr"`
	InjuryStatus *string `json:"injury_status"`
	BodyPart     *string `json:"body_part"`
	Timeline     *string `json:"timeline"`

	RetweetCount  int `json:"retweet_count"`
	FavoriteCount int `json:"favorite_count"`
	ReplyCount    int `json:"reply_count"`
	QuoteCount    int `json:"quote_count"`
}

type IngestResult struct {
	Ingested int `json:"ingested"`
	Matched  int `json:"matched"`
}

type InjuryService interface {
	// IngestTweets upserts scraped injury tweets and links each report
	// to a roster player when the extracted name matches exactly.
	IngestTweets(ctx context.Context, tweets []TweetInput) (*IngestResult, error)

	GetInjury(ctx context.Context, tweetID int64) (*models.SocialMediaInjury, error)
	ListInjuries(ctx context.Context, filter models.InjuryFilter) ([]models.SocialMediaInjury, error)
	VerifyInjury(ctx context.Context, tweetID int64) error
	RejectInjury(ctx context.Context, tweetID int64) error

	// SyncRosterData refreshes player rows from the SportsDataIO feed.
	SyncRosterData(ctx context.Context) (int, error)
}

type injuryService struct {
	injuryRepo repositories.InjuryRepository
	playerRepo repositories.PlayerRepository
	rosterFeed *sportsdata.Client
	logger     *slog.Logger
}

func NewInjuryService(
	injuryRepo repositories.InjuryRepository,
	playerRepo repositories.PlayerRepository,
	rosterFeed *sportsdata.Client,
	logger *slog.Logger,
) InjuryService {
	return &injuryService{
		injuryRepo: injuryRepo,
		playerRepo: playerRepo,
		rosterFeed: rosterFeed,
		logger:     logger,
	}
}

func (s *injuryService) IngestTweets(ctx context.Context, tweets []TweetInput) (*IngestResult, error) {
	result := &IngestResult{}
	now := time.Now().UTC()

	for _, t := range tweets {
		if t.TweetID == 0 || strings.TrimSpace(t.TweetText) == "" {
			return nil, ErrValidationFailed
		}

		injury := &models.SocialMediaInjury{
			TweetID:        t.TweetID,
			AuthorName:     t.AuthorName,
			AuthorUsername: t.AuthorUsername,
			TweetText:      t.TweetText,
			TweetURL:       t.TweetURL,
			PostedAt:       t.PostedAt,
			PlayerName:     t.PlayerName,
			TeamAbbr:       t.TeamAbbr,
			InjuryStatus:   t.InjuryStatus,
			BodyPart:       t.BodyPart,
			Timeline:       t.Timeline,
			RetweetCount:   t.RetweetCount,
			FavoriteCount:  t.FavoriteCount,
			ReplyCount:     t.ReplyCount,
			QuoteCount:     t.QuoteCount,
			Verification:   models.InjuryUnverified,
			ScrapedAt:      now,
		}
		if err := s.injuryRepo.Upsert(ctx, injury); err != nil {
			return nil, err
		}
		result.Ingested++

		if injury.PlayerID == nil && t.PlayerName != nil {
			if s.matchAndLink(ctx, t.TweetID, *t.PlayerName) {
				result.Matched++
			}
		} else if injury.PlayerID != nil {
			result.Matched++
		}
	}
	return result, nil
}

func (s *injuryService) matchAndLink(ctx context.Context, tweetID int64, playerName string) bool {
	player, err := s.playerRepo.GetByName(ctx, playerName)
	if err != nil {
		if !errors.Is(err, repositories.ErrPlayerNotFound) {
			s.logger.Warn("player match lookup failed",
				slog.String("player_name", playerName), slog.Any("error", err))
		}
		return false
	}
	if err := s.injuryRepo.LinkPlayer(ctx, tweetID, player.GSISID, exactNameMatchConfidence); err != nil {
		s.logger.Warn("failed to link injury to player",
			slog.Int64("tweet_id", tweetID), slog.Any("error", err))
		return false
	}
	return true
}

func (s *injuryService) GetInjury(ctx context.Context, tweetID int64) (*models.SocialMediaInjury, error) {
	injury, err := s.injuryRepo.GetByTweetID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repositories.ErrInjuryNotFound) {
			return nil, ErrInjuryNotFound
		}
		return nil, err
	}
	return injury, nil
}

func (s *injuryService) ListInjuries(ctx context.Context, filter models.InjuryFilter) ([]models.SocialMediaInjury, error) {
	return s.injuryRepo.List(ctx, filter)
}

func (s *injuryService) VerifyInjury(ctx context.Context, tweetID int64) error {
	return s.setVerification(ctx, tweetID, models.InjuryVerified)
}

func (s *injuryService) RejectInjury(ctx context.Context, tweetID int64) error {
	return s.setVerification(ctx, tweetID, models.InjuryFalsePositive)
}

func (s *injuryService) setVerification(ctx context.Context, tweetID int64, v models.InjuryVerification) error {
	if err := s.injuryRepo.SetVerification(ctx, tweetID, v); err != nil {
		if errors.Is(err, repositories.ErrInjuryNotFound) {
			return ErrInjuryNotFound
		}
		return err
	}
	return nil
}

func (s *injuryService) SyncRosterData(ctx context.Context) (int, error) {
	if s.rosterFeed == nil {
		return 0, ErrOddsFeedUnavailable
	}
	feedPlayers, err := s.rosterFeed.GetNFLPlayers(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, fp := range feedPlayers {
		if fp.GsisID == "" {
			continue
		}
		player, err := s.playerRepo.GetByID(ctx, fp.GsisID)
		if err != nil {
			// Only refresh players already on our roster.
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				continue
			}
			return updated, err
		}

		if fp.Team != "" {
			team := fp.Team
			player.TeamAbbr = &team
		}
		if fp.Position != "" {
			player.Position = fp.Position
		}
		if fp.Number != nil {
			player.Jersey = fp.Number
		}
		if fp.Status != "" {
			status := fp.Status
			player.Status = &status
		}
		// An injury designation (Questionable, Doubtful, Out, ...) is more
		// specific than the roster status and takes precedence.
		if fp.InjuryStatus != nil && *fp.InjuryStatus != "" {
			player.Status = fp.InjuryStatus
		}

		if err := s.playerRepo.Upsert(ctx, player); err != nil {
			s.logger.Warn("failed to refresh player from roster feed",
				slog.String("gsis_id", fp.GsisID), slog.Any("error", err))
			continue
		}
		updated++
	}

	s.logger.Info("roster data sync complete", slog.Int("players_updated", updated))
	return updated, nil
}
