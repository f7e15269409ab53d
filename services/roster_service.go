package services

import (
	"context"
	"errors"
	"strings"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
)

type RosterService interface {
	UpsertWeekEntry(ctx context.Context, entry *models.PlayerWeekRoster) error
	ListPlayerSeason(ctx context.Context, playerID string, season int) ([]models.PlayerWeekRoster, error)
	ListTeamWeek(ctx context.Context, teamAbbr string, season, week int) ([]models.PlayerWeekRoster, error)
}

type rosterService struct {
	rosterRepo repositories.RosterRepository
	playerRepo repositories.PlayerRepository
}

func NewRosterService(rosterRepo repositories.RosterRepository, playerRepo repositories.PlayerRepository) RosterService {
	return &rosterService{rosterRepo: rosterRepo, playerRepo: playerRepo}
}

func validateSeasonWeek(season, week int) error {
	if season < 1920 {
		return ErrInvalidSeason
	}
	if week < 1 || week > 22 {
		return ErrInvalidWeek
	}
	return nil
}

func (s *rosterService) UpsertWeekEntry(ctx context.Context, entry *models.PlayerWeekRoster) error {
	entry.PlayerID = strings.TrimSpace(entry.PlayerID)
	entry.TeamAbbr = strings.ToUpper(strings.TrimSpace(entry.TeamAbbr))
	if entry.PlayerID == "" || entry.TeamAbbr == "" || entry.Position == "" {
		return ErrValidationFailed
	}
	if err := validateSeasonWeek(entry.Season, entry.Week); err != nil {
		return err
	}

	if _, err := s.playerRepo.GetByID(ctx, entry.PlayerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return s.rosterRepo.UpsertWeek(ctx, entry)
}

func (s *rosterService) ListPlayerSeason(ctx context.Context, playerID string, season int) ([]models.PlayerWeekRoster, error) {
	if season < 1920 {
		return nil, ErrInvalidSeason
	}
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.rosterRepo.ListByPlayerSeason(ctx, playerID, season)
}

func (s *rosterService) ListTeamWeek(ctx context.Context, teamAbbr string, season, week int) ([]models.PlayerWeekRoster, error) {
	if err := validateSeasonWeek(season, week); err != nil {
		return nil, err
	}
	return s.rosterRepo.ListByTeamWeek(ctx, strings.ToUpper(teamAbbr), season, week)
}
