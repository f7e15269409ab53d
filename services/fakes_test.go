package services

import (
	"context"
	"strings"
	"time"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakePlayerRepository struct {
	players map[string]*models.Player
}

func newFakePlayerRepository(players ...models.Player) *fakePlayerRepository {
	f := &fakePlayerRepository{players: make(map[string]*models.Player)}
	for i := range players {
		p := players[i]
		f.players[p.GSISID] = &p
	}
	return f
}

func (f *fakePlayerRepository) Upsert(_ context.Context, player *models.Player) error {
	copied := *player
	f.players[player.GSISID] = &copied
	return nil
}

func (f *fakePlayerRepository) GetByID(_ context.Context, gsisID string) (*models.Player, error) {
	p, ok := f.players[gsisID]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlayerRepository) GetByName(_ context.Context, name string) (*models.Player, error) {
	for _, p := range f.players {
		if strings.EqualFold(p.Name, name) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (f *fakePlayerRepository) List(_ context.Context, filter models.PlayerFilter) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for _, p := range f.players {
		if filter.TeamAbbr != "" && (p.TeamAbbr == nil || *p.TeamAbbr != filter.TeamAbbr) {
			continue
		}
		players = append(players, *p)
	}
	return players, nil
}

func (f *fakePlayerRepository) Delete(_ context.Context, gsisID string) error {
	if _, ok := f.players[gsisID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.players, gsisID)
	return nil
}

func (f *fakePlayerRepository) UpdateHeadshotKey(_ context.Context, gsisID string, key *string) error {
	p, ok := f.players[gsisID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.HeadshotKey = key
	return nil
}

type fakeRosterRepository struct {
	entries []models.PlayerWeekRoster
}

func (f *fakeRosterRepository) UpsertWeek(_ context.Context, entry *models.PlayerWeekRoster) error {
	for i := range f.entries {
		e := &f.entries[i]
		if e.PlayerID == entry.PlayerID && e.Season == entry.Season && e.Week == entry.Week {
			entry.ID = e.ID
			*e = *entry
			return nil
		}
	}
	entry.ID = len(f.entries) + 1
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRosterRepository) ListByPlayerSeason(_ context.Context, playerID string, season int) ([]models.PlayerWeekRoster, error) {
	entries := make([]models.PlayerWeekRoster, 0)
	for _, e := range f.entries {
		if e.PlayerID == playerID && e.Season == season {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *fakeRosterRepository) ListByTeamWeek(_ context.Context, teamAbbr string, season, week int) ([]models.PlayerWeekRoster, error) {
	entries := make([]models.PlayerWeekRoster, 0)
	for _, e := range f.entries {
		if e.TeamAbbr == teamAbbr && e.Season == season && e.Week == week {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type fakeInjuryRepository struct {
	injuries map[int64]*models.SocialMediaInjury
}

func newFakeInjuryRepository() *fakeInjuryRepository {
	return &fakeInjuryRepository{injuries: make(map[int64]*models.SocialMediaInjury)}
}

func (f *fakeInjuryRepository) Upsert(_ context.Context, injury *models.SocialMediaInjury) error {
	if existing, ok := f.injuries[injury.TweetID]; ok {
		existing.RetweetCount = injury.RetweetCount
		existing.FavoriteCount = injury.FavoriteCount
		existing.ReplyCount = injury.ReplyCount
		existing.QuoteCount = injury.QuoteCount
		*injury = *existing
		return nil
	}
	copied := *injury
	f.injuries[injury.TweetID] = &copied
	return nil
}

func (f *fakeInjuryRepository) GetByTweetID(_ context.Context, tweetID int64) (*models.SocialMediaInjury, error) {
	inj, ok := f.injuries[tweetID]
	if !ok {
		return nil, repositories.ErrInjuryNotFound
	}
	copied := *inj
	return &copied, nil
}

func (f *fakeInjuryRepository) List(_ context.Context, filter models.InjuryFilter) ([]models.SocialMediaInjury, error) {
	injuries := make([]models.SocialMediaInjury, 0)
	for _, inj := range f.injuries {
		if filter.Verification != "" && inj.Verification != filter.Verification {
			continue
		}
		injuries = append(injuries, *inj)
	}
	return injuries, nil
}

func (f *fakeInjuryRepository) SetVerification(_ context.Context, tweetID int64, v models.InjuryVerification) error {
	inj, ok := f.injuries[tweetID]
	if !ok {
		return repositories.ErrInjuryNotFound
	}
	inj.Verification = v
	now := time.Now()
	inj.ProcessedAt = &now
	return nil
}

func (f *fakeInjuryRepository) LinkPlayer(_ context.Context, tweetID int64, playerID string, confidence int) error {
	inj, ok := f.injuries[tweetID]
	if !ok {
		return repositories.ErrInjuryNotFound
	}
	inj.PlayerID = &playerID
	inj.Confidence = confidence
	return nil
}
