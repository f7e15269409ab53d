package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

const sportKeyNFL = "americanfootball_nfl"

// Client talks to The Odds API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// Event is one game as the feed describes it.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers,omitempty"`
}

type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Outcome struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Point       *float64 `json:"point,omitempty"`
	Description string   `json:"description,omitempty"`
}

// GetNFLOdds fetches current NFL odds for the game-level markets.
func (c *Client) GetNFLOdds(ctx context.Context) ([]Event, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", "h2h,spreads,totals")
	params.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/odds/?%s", c.baseURL, sportKeyNFL, params.Encode())

	var events []Event
	if err := c.getJSON(ctx, endpoint, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}
	return events, nil
}

// GetEventPlayerProps fetches player prop markets for a single event.
func (c *Client) GetEventPlayerProps(ctx context.Context, eventID string, markets []string) (*Event, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("oddsFormat", "american")
	if len(markets) > 0 {
		params.Set("markets", strings.Join(markets, ","))
	}

	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds?%s", c.baseURL, sportKeyNFL, eventID, params.Encode())

	var event Event
	if err := c.getJSON(ctx, endpoint, &event); err != nil {
		return nil, fmt.Errorf("failed to fetch player props for event %s: %w", eventID, err)
	}
	return &event, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// The feed reports request quota in response headers.
	if remaining := resp.Header.Get("X-Requests-Remaining"); remaining != "" && c.logger != nil {
		c.logger.Debug("odds api quota",
			slog.String("remaining", remaining),
			slog.String("used", resp.Header.Get("X-Requests-Used")))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
