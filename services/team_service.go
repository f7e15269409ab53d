package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
	"github.com/gridironlabs/gridiron-system/storage"
)

type TeamService interface {
	UpsertTeam(ctx context.Context, team *models.Team) error
	GetTeam(ctx context.Context, abbr string) (*models.Team, error)
	// GetTeamRoster returns the team with its players attached.
	GetTeamRoster(ctx context.Context, abbr string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UploadLogo(ctx context.Context, abbr string, contentType string, body io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, playerRepo: playerRepo, uploader: uploader}
}

func (s *teamService) UpsertTeam(ctx context.Context, team *models.Team) error {
	team.Abbr = strings.ToUpper(strings.TrimSpace(team.Abbr))
	if team.Abbr == "" || team.Name == "" {
		return ErrValidationFailed
	}
	if team.Conference != models.ConferenceAFC && team.Conference != models.ConferenceNFC {
		return ErrValidationFailed
	}
	if err := s.teamRepo.Upsert(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamIDConflict) {
			return ErrTeamIDConflict
		}
		return err
	}
	return nil
}

func (s *teamService) GetTeam(ctx context.Context, abbr string) (*models.Team, error) {
	team, err := s.teamRepo.GetByAbbr(ctx, strings.ToUpper(abbr))
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.resolveLogo(team)
	return team, nil
}

func (s *teamService) GetTeamRoster(ctx context.Context, abbr string) (*models.Team, error) {
	team, err := s.GetTeam(ctx, abbr)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.List(ctx, models.PlayerFilter{TeamAbbr: team.Abbr, Limit: 500})
	if err != nil {
		return nil, err
	}
	team.Players = players
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.resolveLogo(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UploadLogo(ctx context.Context, abbr string, contentType string, body io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploaderNotConfigured
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	team, err := s.GetTeam(ctx, abbr)
	if err != nil {
		return nil, err
	}

	key := path.Join("logos", team.Abbr+ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	previous := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, team.Abbr, &result.Key); err != nil {
		return nil, err
	}
	if previous != nil && *previous != result.Key {
		_ = s.uploader.Delete(ctx, *previous)
	}

	team.LogoKey = &result.Key
	s.resolveLogo(team)
	return team, nil
}

func (s *teamService) resolveLogo(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	team.LogoURL = &url
}
