package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.sportsdata.io/v3"

// Client talks to SportsDataIO. Only the NFL player feed is used; it
// carries current injury designations alongside roster data.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

type Player struct {
	PlayerID        int     `json:"PlayerID"`
	GsisID          string  `json:"GsisID"`
	FirstName       string  `json:"FirstName"`
	LastName        string  `json:"LastName"`
	Team            string  `json:"Team"`
	Position        string  `json:"Position"`
	Number          *int    `json:"Number"`
	Status          string  `json:"Status"`
	InjuryStatus    *string `json:"InjuryStatus"`
	InjuryBodyPart  *string `json:"InjuryBodyPart"`
	InjuryStartDate *string `json:"InjuryStartDate"`
	InjuryNotes     *string `json:"InjuryNotes"`
}

// GetNFLPlayers fetches all NFL players with injury info.
func (c *Client) GetNFLPlayers(ctx context.Context) ([]Player, error) {
	endpoint := fmt.Sprintf("%s/nfl/scores/json/Players?key=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var players []Player
	if err := json.NewDecoder(resp.Body).Decode(&players); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return players, nil
}
