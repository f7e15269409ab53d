package models

import "time"

type InjuryVerification string

const (
	InjuryUnverified    InjuryVerification = "unverified"
	InjuryVerified      InjuryVerification = "verified"
	InjuryFalsePositive InjuryVerification = "false_positive"
)

// SocialMediaInjury is an injury report scraped from a beat-writer tweet.
// The tweet id is the primary key, so re-ingesting the same tweet only
// refreshes engagement counters.
type SocialMediaInjury struct {
	TweetID        int64     `json:"tweet_id,string" db:"tweet_id"`
	AuthorName     string    `json:"author_name" db:"author_name"`
	AuthorUsername string    `json:"author_username" db:"author_username"`
	TweetText      string    `json:"tweet_text" db:"tweet_text"`
	TweetURL       *string   `json:"tweet_url,omitempty" db:"tweet_url"`
	PostedAt       time.Time `json:"posted_at" db:"posted_at"`

	// Fields extracted from the tweet text. PlayerName and TeamAbbr are
	// the raw extraction; PlayerID is set once the report is matched to
	// a roster entry.
	PlayerName   *string `json:"player_name,omitempty" db:"player_name"`
	TeamAbbr     *string `json:"team_abbr,omitempty" db:"team_abbr"`
	InjuryStatus *string `json:"injury_status,omitempty" db:"injury_status"`
	BodyPart     *string `json:"body_part,omitempty" db:"body_part"`
	Timeline     *string `json:"timeline,omitempty" db:"timeline"`
	Confidence   int     `json:"confidence_score" db:"confidence_score"`
	PlayerID     *string `json:"player_id,omitempty" db:"player_id"`

	RetweetCount  int `json:"retweet_count" db:"retweet_count"`
	FavoriteCount int `json:"favorite_count" db:"favorite_count"`
	ReplyCount    int `json:"reply_count" db:"reply_count"`
	QuoteCount    int `json:"quote_count" db:"quote_count"`

	Verification InjuryVerification `json:"is_verified" db:"verification"`
	ScrapedAt    time.Time          `json:"scraped_at" db:"scraped_at"`
	ProcessedAt  *time.Time         `json:"processed_at,omitempty" db:"processed_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}

// InjuryFilter narrows injury listings.
type InjuryFilter struct {
	PlayerID     string
	TeamAbbr     string
	Verification InjuryVerification
	Since        *time.Time
	Limit        int
	Offset       int
}
