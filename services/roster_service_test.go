package services

import (
	"context"
	"testing"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertWeekEntryValidation(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0031381", "Davante Adams", "LV"))
	svc := NewRosterService(&fakeRosterRepository{}, playerRepo)
	ctx := context.Background()

	base := func() *models.PlayerWeekRoster {
		return &models.PlayerWeekRoster{
			PlayerID: "00-0031381",
			TeamAbbr: "LV",
			Position: "WR",
			Season:   2025,
			Week:     3,
		}
	}

	t.Run("valid entry", func(t *testing.T) {
		assert.NoError(t, svc.UpsertWeekEntry(ctx, base()))
	})

	t.Run("season before 1920", func(t *testing.T) {
		entry := base()
		entry.Season = 1919
		assert.ErrorIs(t, svc.UpsertWeekEntry(ctx, entry), ErrInvalidSeason)
	})

	t.Run("week out of range", func(t *testing.T) {
		entry := base()
		entry.Week = 0
		assert.ErrorIs(t, svc.UpsertWeekEntry(ctx, entry), ErrInvalidWeek)

		entry = base()
		entry.Week = 23
		assert.ErrorIs(t, svc.UpsertWeekEntry(ctx, entry), ErrInvalidWeek)
	})

	t.Run("unknown player", func(t *testing.T) {
		entry := base()
		entry.PlayerID = "00-0000000"
		assert.ErrorIs(t, svc.UpsertWeekEntry(ctx, entry), ErrPlayerNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		entry := base()
		entry.Position = ""
		assert.ErrorIs(t, svc.UpsertWeekEntry(ctx, entry), ErrValidationFailed)
	})

	t.Run("team abbreviation is upcased", func(t *testing.T) {
		entry := base()
		entry.TeamAbbr = "lv"
		require.NoError(t, svc.UpsertWeekEntry(ctx, entry))
		assert.Equal(t, "LV", entry.TeamAbbr)
	})
}

func TestUpsertWeekEntryIsIdempotent(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0031381", "Davante Adams", "LV"))
	rosterRepo := &fakeRosterRepository{}
	svc := NewRosterService(rosterRepo, playerRepo)
	ctx := context.Background()

	entry := &models.PlayerWeekRoster{PlayerID: "00-0031381", TeamAbbr: "LV", Position: "WR", Season: 2025, Week: 1}
	require.NoError(t, svc.UpsertWeekEntry(ctx, entry))
	firstID := entry.ID

	update := &models.PlayerWeekRoster{PlayerID: "00-0031381", TeamAbbr: "NYJ", Position: "WR", Season: 2025, Week: 1}
	require.NoError(t, svc.UpsertWeekEntry(ctx, update))
	assert.Equal(t, firstID, update.ID)

	entries, err := svc.ListPlayerSeason(ctx, "00-0031381", 2025)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NYJ", entries[0].TeamAbbr)
}

func TestListTeamWeekValidation(t *testing.T) {
	svc := NewRosterService(&fakeRosterRepository{}, newFakePlayerRepository())

	_, err := svc.ListTeamWeek(context.Background(), "KC", 1800, 1)
	assert.ErrorIs(t, err, ErrInvalidSeason)

	_, err = svc.ListTeamWeek(context.Background(), "KC", 2025, 25)
	assert.ErrorIs(t, err, ErrInvalidWeek)
}
