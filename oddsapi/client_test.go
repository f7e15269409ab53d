package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNFLOdds(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("X-Requests-Remaining", "499")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "evt1",
				"sport_key": "americanfootball_nfl",
				"sport_title": "NFL",
				"commence_time": "2025-09-07T17:00:00Z",
				"home_team": "Kansas City Chiefs",
				"away_team": "Buffalo Bills",
				"bookmakers": [
					{
						"key": "draftkings",
						"title": "DraftKings",
						"last_update": "2025-09-07T12:00:00Z",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "Kansas City Chiefs", "price": -150},
									{"name": "Buffalo Bills", "price": 130}
								]
							},
							{
								"key": "spreads",
								"outcomes": [
									{"name": "Kansas City Chiefs", "price": -110, "point": -2.5},
									{"name": "Buffalo Bills", "price": -110, "point": 2.5}
								]
							}
						]
					}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewClient("test-key", nil)
	client.SetBaseURL(server.URL)

	events, err := client.GetNFLOdds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/sports/americanfootball_nfl/odds/", gotPath)
	assert.Equal(t, []string{"test-key"}, gotQuery["apiKey"])
	assert.Equal(t, []string{"us"}, gotQuery["regions"])
	assert.Equal(t, []string{"h2h,spreads,totals"}, gotQuery["markets"])
	assert.Equal(t, []string{"american"}, gotQuery["oddsFormat"])

	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, "evt1", event.ID)
	assert.Equal(t, "Kansas City Chiefs", event.HomeTeam)
	require.Len(t, event.Bookmakers, 1)
	require.Len(t, event.Bookmakers[0].Markets, 2)

	spread := event.Bookmakers[0].Markets[1]
	require.Len(t, spread.Outcomes, 2)
	require.NotNil(t, spread.Outcomes[0].Point)
	assert.InDelta(t, -2.5, *spread.Outcomes[0].Point, 0.001)
}

func TestGetEventPlayerProps(t *testing.T) {
	var gotPath string
	var gotMarkets string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMarkets = r.URL.Query().Get("markets")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "evt1",
			"sport_key": "americanfootball_nfl",
			"commence_time": "2025-09-07T17:00:00Z",
			"home_team": "Kansas City Chiefs",
			"away_team": "Buffalo Bills",
			"bookmakers": [
				{
					"key": "fanduel",
					"title": "FanDuel",
					"last_update": "2025-09-07T12:00:00Z",
					"markets": [
						{
							"key": "player_pass_yds",
							"outcomes": [
								{"name": "Over", "description": "Patrick Mahomes", "price": -115, "point": 284.5},
								{"name": "Under", "description": "Patrick Mahomes", "price": -105, "point": 284.5}
							]
						}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", nil)
	client.SetBaseURL(server.URL)

	event, err := client.GetEventPlayerProps(context.Background(), "evt1", []string{"player_pass_yds", "player_pass_tds"})
	require.NoError(t, err)

	assert.Equal(t, "/sports/americanfootball_nfl/events/evt1/odds", gotPath)
	assert.Equal(t, "player_pass_yds,player_pass_tds", gotMarkets)
	require.Len(t, event.Bookmakers, 1)
	assert.Equal(t, "Patrick Mahomes", event.Bookmakers[0].Markets[0].Outcomes[0].Description)
}

func TestGetNFLOddsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", nil)
	client.SetBaseURL(server.URL)

	_, err := client.GetNFLOdds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
