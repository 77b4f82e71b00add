package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/db"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// ITermRepository defines taxonomy term storage operations
type ITermRepository interface {
	Load(ctx context.Context, id int64) (*models.Term, error)
	LoadMultiple(ctx context.Context, ids []int64) (map[int64]*models.Term, error)
	ListByVocabulary(ctx context.Context, vid string) ([]*models.Term, error)
	Create(ctx context.Context, term *models.Term) error
}

// TermRepository handles taxonomy term database operations
type TermRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(database *db.PostgresDB) *TermRepository {
	return &TermRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *TermRepository) selectTerms() squirrel.SelectBuilder {
	return r.sb.Select("id", "vid", "name", "weight", "created_at").From("taxonomy_terms")
}

func scanTerm(row rowScanner) (*models.Term, error) {
	term := &models.Term{}
	if err := row.Scan(&term.ID, &term.Vocabulary, &term.Name, &term.Weight, &term.CreatedAt); err != nil {
		return nil, err
	}
	return term, nil
}

// Load retrieves a term by id
func (r *TermRepository) Load(ctx context.Context, id int64) (*models.Term, error) {
	sql, args, err := r.selectTerms().Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load term query: %w", err)
	}

	term, err := scanTerm(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("taxonomy term %d not found", id))
		}
		logger.Error().Err(err).Int64("termID", id).Msg("Error loading taxonomy term")
		return nil, dberrors.Classify(fmt.Errorf("error loading taxonomy term: %w", err))
	}
	return term, nil
}

// LoadMultiple retrieves the terms with the given ids, keyed by id
func (r *TermRepository) LoadMultiple(ctx context.Context, ids []int64) (map[int64]*models.Term, error) {
	terms := make(map[int64]*models.Term, len(ids))
	if len(ids) == 0 {
		return terms, nil
	}

	sql, args, err := r.selectTerms().Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load terms query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading taxonomy terms")
		return nil, dberrors.Classify(fmt.Errorf("error loading taxonomy terms: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning taxonomy term: %w", err)
		}
		terms[term.ID] = term
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(fmt.Errorf("error iterating taxonomy terms: %w", err))
	}
	return terms, nil
}

// ListByVocabulary lists the terms of a vocabulary by weight, then name
func (r *TermRepository) ListByVocabulary(ctx context.Context, vid string) ([]*models.Term, error) {
	sql, args, err := r.selectTerms().
		Where(squirrel.Eq{"vid": vid}).
		OrderBy("weight ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build vocabulary query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("vid", vid).Msg("Error listing vocabulary terms")
		return nil, dberrors.Classify(fmt.Errorf("error listing vocabulary terms: %w", err))
	}
	defer rows.Close()

	terms := []*models.Term{}
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning taxonomy term: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(fmt.Errorf("error iterating vocabulary terms: %w", err))
	}
	return terms, nil
}

// Create inserts a term. An existing term with the same vocabulary and name is reused.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) error {
	sql, args, err := r.sb.Insert("taxonomy_terms").
		Columns("vid", "name", "weight").
		Values(term.Vocabulary, term.Name, term.Weight).
		Suffix("ON CONFLICT (vid, name) DO UPDATE SET weight = EXCLUDED.weight RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create term query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&term.ID, &term.CreatedAt); err != nil {
		logger.Error().Err(err).Str("name", term.Name).Msg("Error creating taxonomy term")
		return dberrors.Classify(fmt.Errorf("error creating taxonomy term: %w", err))
	}
	return nil
}
