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

// allowedImageTypes maps accepted upload content types to the file
// extension stored objects get.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type PlayerService interface {
	UpsertPlayer(ctx context.Context, player *models.Player) error
	GetPlayer(ctx context.Context, gsisID string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error)
	DeletePlayer(ctx context.Context, gsisID string) error
	UploadHeadshot(ctx context.Context, gsisID string, contentType string, body io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{playerRepo: playerRepo, uploader: uploader}
}

func (s *playerService) UpsertPlayer(ctx context.Context, player *models.Player) error {
	player.GSISID = strings.TrimSpace(player.GSISID)
	player.Name = strings.TrimSpace(player.Name)
	if player.GSISID == "" || player.Name == "" || player.Position == "" {
		return ErrValidationFailed
	}
	if err := s.playerRepo.Upsert(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return ErrTeamNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) GetPlayer(ctx context.Context, gsisID string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, gsisID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.resolveHeadshot(player)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.resolveHeadshot(&players[i])
	}
	return players, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, gsisID string) error {
	player, err := s.GetPlayer(ctx, gsisID)
	if err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, gsisID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	if s.uploader != nil && player.HeadshotKey != nil {
		// Orphaned objects are acceptable; the row is already gone.
		_ = s.uploader.Delete(ctx, *player.HeadshotKey)
	}
	return nil
}

func (s *playerService) UploadHeadshot(ctx context.Context, gsisID string, contentType string, body io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrUploaderNotConfigured
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	player, err := s.GetPlayer(ctx, gsisID)
	if err != nil {
		return nil, err
	}

	key := path.Join("headshots", gsisID+ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload headshot: %w", err)
	}

	previous := player.HeadshotKey
	if err := s.playerRepo.UpdateHeadshotKey(ctx, gsisID, &result.Key); err != nil {
		return nil, err
	}
	if previous != nil && *previous != result.Key {
		_ = s.uploader.Delete(ctx, *previous)
	}

	player.HeadshotKey = &result.Key
	s.resolveHeadshot(player)
	return player, nil
}

func (s *playerService) resolveHeadshot(player *models.Player) {
	if s.uploader == nil || player.HeadshotKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*player.HeadshotKey)
	player.HeadshotURL = &url
}
