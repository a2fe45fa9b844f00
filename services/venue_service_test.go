package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	baseURL   string
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	if u.baseURL == "" {
		return ""
	}
	return u.baseURL + "/" + key
}

func TestVenueCreate_Validation(t *testing.T) {
	svc := NewVenueService(newFakeVenueRepo(), nil)

	_, err := svc.Create(context.Background(), CreateVenueInput{Name: "   "})
	require.ErrorIs(t, err, ErrVenueNameRequired)

	_, err = svc.Create(context.Background(), CreateVenueInput{Name: "Court", Priority: -1})
	require.ErrorIs(t, err, ErrVenueInvalidPriority)

	_, err = svc.Create(context.Background(), CreateVenueInput{Name: "Court", PricePerHour: -5})
	require.ErrorIs(t, err, ErrVenueInvalidPrice)

	_, err = svc.Create(context.Background(), CreateVenueInput{Name: "Court", MinAdvanceHours: -1})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestVenueCreate_TrimsName(t *testing.T) {
	repo := newFakeVenueRepo()
	svc := NewVenueService(repo, nil)

	venue, err := svc.Create(context.Background(), CreateVenueInput{
		Name:         "  Central Court  ",
		Priority:     2,
		PricePerHour: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "Central Court", venue.Name)
	assert.NotZero(t, venue.ID)
}

func TestVenueGetByID_PopulatesPhotoURL(t *testing.T) {
	key := "venues/1/photo-abc.jpg"
	repo := newFakeVenueRepo(&models.Venue{ID: 1, Name: "Court", PhotoKey: &key})
	uploader := &fakeUploader{baseURL: "https://cdn.example.com"}
	svc := NewVenueService(repo, uploader)

	venue, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, venue.PhotoURL)
	assert.Equal(t, "https://cdn.example.com/"+key, *venue.PhotoURL)
}

func TestVenueGetByID_NotFound(t *testing.T) {
	svc := NewVenueService(newFakeVenueRepo(), nil)

	_, err := svc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUploadPhoto_WithoutStorageConfigured(t *testing.T) {
	svc := NewVenueService(newFakeVenueRepo(&models.Venue{ID: 1, Name: "Court"}), nil)

	_, err := svc.UploadPhoto(context.Background(), 1, "image/png", strings.NewReader("img"))
	require.ErrorIs(t, err, ErrPhotoUploadUnavailable)
}

func TestUploadPhoto_UnsupportedContentType(t *testing.T) {
	svc := NewVenueService(
		newFakeVenueRepo(&models.Venue{ID: 1, Name: "Court"}),
		&fakeUploader{},
	)

	_, err := svc.UploadPhoto(context.Background(), 1, "application/pdf", strings.NewReader("img"))
	require.ErrorIs(t, err, ErrUnsupportedPhotoContent)
}

func TestUploadPhoto_ReplacesOldPhoto(t *testing.T) {
	oldKey := "venues/1/photo-old.jpg"
	repo := newFakeVenueRepo(&models.Venue{ID: 1, Name: "Court", PhotoKey: &oldKey})
	uploader := &fakeUploader{baseURL: "https://cdn.example.com"}
	svc := NewVenueService(repo, uploader)

	venue, err := svc.UploadPhoto(context.Background(), 1, "image/jpeg", strings.NewReader("img"))
	require.NoError(t, err)

	require.Len(t, uploader.uploaded, 1)
	newKey := uploader.uploaded[0]
	assert.True(t, strings.HasPrefix(newKey, "venues/1/photo-"))
	assert.True(t, strings.HasSuffix(newKey, ".jpg"))

	// Старый объект удалён, ключ в записи обновлён.
	assert.Equal(t, []string{oldKey}, uploader.deleted)
	require.NotNil(t, venue.PhotoKey)
	assert.Equal(t, newKey, *venue.PhotoKey)
	require.NotNil(t, venue.PhotoURL)
}

func TestUploadPhoto_CleansUpWhenUpdateFails(t *testing.T) {
	repo := newFakeVenueRepo(&models.Venue{ID: 1, Name: "Court"})
	repo.photoKeyErr = assert.AnError
	uploader := &fakeUploader{}
	svc := NewVenueService(repo, uploader)

	_, err := svc.UploadPhoto(context.Background(), 1, "image/webp", strings.NewReader("img"))
	require.Error(t, err)

	// Загруженный объект подчищен.
	require.Len(t, uploader.uploaded, 1)
	assert.Equal(t, uploader.uploaded, uploader.deleted)
}
