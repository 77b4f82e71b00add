package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/db"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// IFileRepository defines managed file storage operations
type IFileRepository interface {
	Create(ctx context.Context, file *models.File) error
	Load(ctx context.Context, id int64) (*models.File, error)
	Save(ctx context.Context, file *models.File) error
	ListExpiredTemporary(ctx context.Context, before time.Time, limit uint64) ([]*models.File, error)
	Delete(ctx context.Context, id int64) error
}

// FileRepository handles database operations for files
type FileRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(database *db.PostgresDB) *FileRepository {
	return &FileRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *FileRepository) selectFiles() squirrel.SelectBuilder {
	return r.sb.Select("id", "uid", "filename", "uri", "url", "mime", "size", "status", "created_at", "updated_at").
		From("files")
}

func scanFile(row rowScanner) (*models.File, error) {
	file := &models.File{}
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.FileName,
		&file.URI,
		&file.FileURL,
		&file.MimeType,
		&file.FileSize,
		&file.Status,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Load retrieves a file by ID
func (r *FileRepository) Load(ctx context.Context, id int64) (*models.File, error) {
	sql, args, err := r.selectFiles().Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load file query: %w", err)
	}

	file, err := scanFile(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		logger.Error().Err(err).Int64("fileID", id).Msg("Error loading file")
		return nil, dberrors.Classify(fmt.Errorf("error getting file: %w", err))
	}
	return file, nil
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	sql, args, err := r.sb.Insert("files").
		Columns("uid", "filename", "uri", "url", "mime", "size", "status").
		Values(file.OwnerID, file.FileName, file.URI, file.FileURL, file.MimeType, file.FileSize, file.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create file query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("uri", file.URI).Msg("Error creating file record")
		return dberrors.Classify(fmt.Errorf("error creating file: %w", err))
	}
	return nil
}

// Save persists the mutable fields of an existing file
func (r *FileRepository) Save(ctx context.Context, file *models.File) error {
	sql, args, err := r.sb.Update("files").
		Set("uid", file.OwnerID).
		Set("status", file.Status).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": file.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save file query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&file.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrFileNotFound
		}
		logger.Error().Err(err).Int64("fileID", file.ID).Msg("Error saving file")
		return dberrors.Classify(fmt.Errorf("error updating file: %w", err))
	}
	return nil
}

// ListExpiredTemporary lists temporary files last touched before the given time
func (r *FileRepository) ListExpiredTemporary(ctx context.Context, before time.Time, limit uint64) ([]*models.File, error) {
	sql, args, err := r.selectFiles().
		Where(squirrel.Eq{"status": models.FileStatusTemporary}).
		Where(squirrel.Lt{"updated_at": before}).
		OrderBy("updated_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expired files query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Classify(fmt.Errorf("error listing expired files: %w", err))
	}
	defer rows.Close()

	files := []*models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning file row: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(fmt.Errorf("error iterating file rows: %w", err))
	}
	return files, nil
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("files").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete file query: %w", err)
	}

	result, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Classify(fmt.Errorf("error deleting file: %w", err))
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}
