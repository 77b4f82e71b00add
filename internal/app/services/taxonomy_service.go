package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// TaxonomyService exposes taxonomy terms and path alias resolution
type TaxonomyService struct {
	termRepo  repositories.ITermRepository
	aliasRepo repositories.IPathAliasRepository
	logger    zerolog.Logger
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(termRepo repositories.ITermRepository, aliasRepo repositories.IPathAliasRepository, logger zerolog.Logger) *TaxonomyService {
	return &TaxonomyService{
		termRepo:  termRepo,
		aliasRepo: aliasRepo,
		logger:    logger,
	}
}

// GetAliasByPath returns the alias of a system path, or the path itself when it has none
func (s *TaxonomyService) GetAliasByPath(ctx context.Context, path string) (string, error) {
	alias, err := s.aliasRepo.GetAliasByPath(ctx, path)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return path, nil
		}
		return "", err
	}
	return alias, nil
}

// GetPathByAlias returns the system path behind an alias
func (s *TaxonomyService) GetPathByAlias(ctx context.Context, alias string) (string, error) {
	return s.aliasRepo.GetPathByAlias(ctx, alias)
}

// LoadTerm loads a taxonomy term
func (s *TaxonomyService) LoadTerm(ctx context.Context, id int64) (*models.Term, error) {
	return s.termRepo.Load(ctx, id)
}

// ListVocabulary lists a vocabulary's terms with their public URLs
func (s *TaxonomyService) ListVocabulary(ctx context.Context, vid string) ([]dto.StreamResponse, error) {
	terms, err := s.termRepo.ListByVocabulary(ctx, vid)
	if err != nil {
		return nil, err
	}

	streams := make([]dto.StreamResponse, 0, len(terms))
	for _, term := range terms {
		url, err := s.GetAliasByPath(ctx, term.SystemPath())
		if err != nil {
			return nil, err
		}
		streams = append(streams, dto.StreamResponse{ID: term.ID, Name: term.Label(), URL: url})
	}
	return streams, nil
}
