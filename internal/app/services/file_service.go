package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/validation"
)

// cleanupBatchSize bounds how many expired files one cleanup pass removes
const cleanupBatchSize = 100

// FileConfig holds upload rules
type FileConfig struct {
	UploadLocation    string
	AllowedExtensions []string
	MaxUploadSize     int64
}

// FileService manages uploaded files and their temporary/permanent status
type FileService struct {
	fileRepo repositories.IFileRepository
	storage  filestorage.FileStorage
	config   FileConfig
	logger   zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(fileRepo repositories.IFileRepository, storage filestorage.FileStorage, config FileConfig, logger zerolog.Logger) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		config:   config,
		logger:   logger,
	}
}

// SaveTemporary validates an upload, stores it and records it as a temporary file
func (s *FileService) SaveTemporary(ctx context.Context, header *multipart.FileHeader, ownerID *int64) (*models.File, error) {
	if header == nil {
		return nil, apperrors.NewBadRequestError("no file uploaded")
	}

	if err := validation.NewFileValidation(header.Filename, header.Size).
		WithExtensions(s.config.AllowedExtensions...).
		WithMaxSize(s.config.MaxUploadSize).
		Validate(); err != nil {
		return nil, err
	}

	info, err := s.storage.SaveFileWithPath(header, s.config.UploadLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	// The stored size is authoritative; the header size may be absent.
	if err := validation.NewFileValidation(header.Filename, info.FileSize).
		WithMaxSize(s.config.MaxUploadSize).
		Validate(); err != nil {
		s.removeBytes(info.Path)
		return nil, err
	}

	file := &models.File{
		OwnerID:  ownerID,
		FileName: info.Filename,
		URI:      info.Path,
		FileURL:  info.URL,
		MimeType: info.MimeType,
		FileSize: info.FileSize,
		Status:   models.FileStatusTemporary,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.removeBytes(info.Path)
		return nil, err
	}

	s.logger.Info().Int64("fid", file.ID).Str("uri", file.URI).Msg("Temporary file saved")
	return file, nil
}

// Load loads a file record
func (s *FileService) Load(ctx context.Context, id int64) (*models.File, error) {
	return s.fileRepo.Load(ctx, id)
}

// SetPermanent marks the file permanent and saves it.
// changed is false when the file was already permanent.
func (s *FileService) SetPermanent(ctx context.Context, file *models.File) (changed bool, err error) {
	if file.IsPermanent() {
		return false, nil
	}
	file.SetPermanent()
	if err := s.fileRepo.Save(ctx, file); err != nil {
		file.Status = models.FileStatusTemporary
		return false, err
	}
	return true, nil
}

// SetTemporary returns a file to temporary status so cleanup can collect it
func (s *FileService) SetTemporary(ctx context.Context, file *models.File) error {
	if !file.IsPermanent() {
		return nil
	}
	file.Status = models.FileStatusTemporary
	return s.fileRepo.Save(ctx, file)
}

// DeleteExpiredTemporary removes temporary files not touched since maxAge before now.
// It returns how many files were removed.
func (s *FileService) DeleteExpiredTemporary(ctx context.Context, now time.Time, maxAge time.Duration) (int, error) {
	files, err := s.fileRepo.ListExpiredTemporary(ctx, now.Add(-maxAge), cleanupBatchSize)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, file := range files {
		if err := s.storage.DeleteFile(file.URI); err != nil {
			s.logger.Error().Err(err).Int64("fid", file.ID).Msg("Failed to delete expired file bytes")
			continue
		}
		if err := s.fileRepo.Delete(ctx, file.ID); err != nil && !errors.Is(err, apperrors.ErrFileNotFound) {
			s.logger.Error().Err(err).Int64("fid", file.ID).Msg("Failed to delete expired file record")
			continue
		}
		removed++
	}
	return removed, nil
}

func (s *FileService) removeBytes(path string) {
	if err := s.storage.DeleteFile(path); err != nil {
		s.logger.Error().Err(err).Str("uri", path).Msg("Failed to remove stored upload")
	}
}
