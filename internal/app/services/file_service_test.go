package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

func newTestFileService(repo *fakeFileRepo, storage *fakeStorage) *FileService {
	return NewFileService(repo, storage, FileConfig{
		UploadLocation:    "profile_pictures",
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif"},
		MaxUploadSize:     2560000,
	}, zerolog.Nop())
}

func TestSaveTemporary(t *testing.T) {
	repo := newFakeFileRepo()
	storage := &fakeStorage{}
	svc := newTestFileService(repo, storage)

	file, err := svc.SaveTemporary(context.Background(), &multipart.FileHeader{Filename: "me.jpg", Size: 100}, int64Ptr(9))
	require.NoError(t, err)

	assert.NotZero(t, file.ID)
	assert.Equal(t, models.FileStatusTemporary, file.Status)
	assert.Equal(t, "profile_pictures/me.jpg", file.URI)
	assert.Equal(t, int64(9), *file.OwnerID)
	assert.Equal(t, "image/png", file.MimeType)
}

func TestSaveTemporaryRequiresFile(t *testing.T) {
	svc := newTestFileService(newFakeFileRepo(), &fakeStorage{})

	_, err := svc.SaveTemporary(context.Background(), nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSetPermanentRollsBackStatusOnSaveError(t *testing.T) {
	repo := newFakeFileRepo()
	repo.saveErr = apperrors.ErrStorageUnavailable
	svc := newTestFileService(repo, &fakeStorage{})
	file := &models.File{ID: 1}

	changed, err := svc.SetPermanent(context.Background(), file)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.False(t, changed)
	assert.False(t, file.IsPermanent())
}

func TestSetPermanentIsIdempotent(t *testing.T) {
	repo := newFakeFileRepo()
	svc := newTestFileService(repo, &fakeStorage{})
	file := &models.File{ID: 1, Status: models.FileStatusPermanent}

	changed, err := svc.SetPermanent(context.Background(), file)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, repo.saves)
}

func TestSetPermanentReportsChange(t *testing.T) {
	repo := newFakeFileRepo()
	svc := newTestFileService(repo, &fakeStorage{})
	file := &models.File{ID: 1}

	changed, err := svc.SetPermanent(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, file.IsPermanent())
	assert.Equal(t, 1, repo.saves)
}

func TestDeleteExpiredTemporary(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeFileRepo(
		&models.File{ID: 1, URI: "profile_pictures/old.png", UpdatedAt: now.Add(-7 * time.Hour)},
		&models.File{ID: 2, URI: "profile_pictures/new.png", UpdatedAt: now.Add(-time.Hour)},
		&models.File{ID: 3, URI: "profile_pictures/kept.png", UpdatedAt: now.Add(-48 * time.Hour), Status: models.FileStatusPermanent},
	)
	storage := &fakeStorage{}
	svc := newTestFileService(repo, storage)

	removed, err := svc.DeleteExpiredTemporary(context.Background(), now, 6*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"profile_pictures/old.png"}, storage.deleted)
	assert.NotContains(t, repo.files, int64(1))
	assert.Contains(t, repo.files, int64(2))
	assert.Contains(t, repo.files, int64(3))
}
