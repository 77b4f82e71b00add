package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentportal/internal/db"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// IPathAliasRepository defines path alias storage operations
type IPathAliasRepository interface {
	GetAliasByPath(ctx context.Context, path string) (string, error)
	GetPathByAlias(ctx context.Context, alias string) (string, error)
	Save(ctx context.Context, path, alias string) error
}

// PathAliasRepository handles path alias database operations
type PathAliasRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPathAliasRepository creates a new PathAliasRepository
func NewPathAliasRepository(database *db.PostgresDB) *PathAliasRepository {
	return &PathAliasRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAliasByPath returns the alias of a system path, or ErrResourceNotFound
func (r *PathAliasRepository) GetAliasByPath(ctx context.Context, path string) (string, error) {
	return r.lookup(ctx, "alias", squirrel.Eq{"path": path})
}

// GetPathByAlias returns the system path an alias points to, or ErrResourceNotFound
func (r *PathAliasRepository) GetPathByAlias(ctx context.Context, alias string) (string, error) {
	return r.lookup(ctx, "path", squirrel.Eq{"alias": alias})
}

func (r *PathAliasRepository) lookup(ctx context.Context, column string, where squirrel.Eq) (string, error) {
	sql, args, err := r.sb.Select(column).From("path_aliases").Where(where).Limit(1).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build path alias query: %w", err)
	}

	var value string
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("column", column).Msg("Error looking up path alias")
		return "", dberrors.Classify(fmt.Errorf("error looking up path alias: %w", err))
	}
	return value, nil
}

// Save creates or replaces the alias of path
func (r *PathAliasRepository) Save(ctx context.Context, path, alias string) error {
	sql, args, err := r.sb.Insert("path_aliases").
		Columns("path", "alias").
		Values(path, alias).
		Suffix("ON CONFLICT (path) DO UPDATE SET alias = EXCLUDED.alias").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save path alias query: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "path_aliases_alias_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return dberrors.Classify(fmt.Errorf("error saving path alias: %w", err))
	}
	return nil
}
