package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/gridironlabs/gridiron-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	objects map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.objects[key] = data
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func TestUploadHeadshot(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0034796", "Lamar Jackson", "BAL"))
	uploader := newFakeUploader()
	svc := NewPlayerService(playerRepo, uploader)
	ctx := context.Background()

	player, err := svc.UploadHeadshot(ctx, "00-0034796", "image/png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)

	require.NotNil(t, player.HeadshotKey)
	assert.Equal(t, "headshots/00-0034796.png", *player.HeadshotKey)
	require.NotNil(t, player.HeadshotURL)
	assert.Equal(t, "https://cdn.test/headshots/00-0034796.png", *player.HeadshotURL)
	assert.Contains(t, uploader.objects, "headshots/00-0034796.png")
}

func TestUploadHeadshotReplacesPreviousObject(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0034796", "Lamar Jackson", "BAL"))
	uploader := newFakeUploader()
	svc := NewPlayerService(playerRepo, uploader)
	ctx := context.Background()

	_, err := svc.UploadHeadshot(ctx, "00-0034796", "image/png", bytes.NewReader([]byte("v1")))
	require.NoError(t, err)
	_, err = svc.UploadHeadshot(ctx, "00-0034796", "image/jpeg", bytes.NewReader([]byte("v2")))
	require.NoError(t, err)

	assert.Contains(t, uploader.deleted, "headshots/00-0034796.png")
	assert.Contains(t, uploader.objects, "headshots/00-0034796.jpg")
}

func TestUploadHeadshotRejectsUnsupportedContentType(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0034796", "Lamar Jackson", "BAL"))
	svc := NewPlayerService(playerRepo, newFakeUploader())

	_, err := svc.UploadHeadshot(context.Background(), "00-0034796", "image/gif", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = svc.UploadHeadshot(context.Background(), "00-0034796", "application/pdf", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestUploadHeadshotWithoutUploader(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0034796", "Lamar Jackson", "BAL"))
	svc := NewPlayerService(playerRepo, nil)

	_, err := svc.UploadHeadshot(context.Background(), "00-0034796", "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUploaderNotConfigured)
}

func TestUploadHeadshotUnknownPlayer(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepository(), newFakeUploader())

	_, err := svc.UploadHeadshot(context.Background(), "00-0000000", "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDeletePlayerRemovesHeadshot(t *testing.T) {
	playerRepo := newFakePlayerRepository(rosterPlayer("00-0034796", "Lamar Jackson", "BAL"))
	uploader := newFakeUploader()
	svc := NewPlayerService(playerRepo, uploader)
	ctx := context.Background()

	_, err := svc.UploadHeadshot(ctx, "00-0034796", "image/webp", bytes.NewReader([]byte("webp")))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlayer(ctx, "00-0034796"))
	assert.Contains(t, uploader.deleted, "headshots/00-0034796.webp")

	_, err = svc.GetPlayer(ctx, "00-0034796")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
