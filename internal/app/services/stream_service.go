package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// FrontPath is where the redirector sends users it cannot place
const FrontPath = "/"

// AliasResolver maps system paths to their public aliases
type AliasResolver interface {
	GetAliasByPath(ctx context.Context, path string) (string, error)
}

// StreamService resolves the page of the current user's stream
type StreamService struct {
	accountRepo repositories.IAccountRepository
	termRepo    repositories.ITermRepository
	aliases     AliasResolver
	logger      zerolog.Logger
}

// NewStreamService creates a new StreamService. logger should be the user_stream channel.
func NewStreamService(
	accountRepo repositories.IAccountRepository,
	termRepo repositories.ITermRepository,
	aliases AliasResolver,
	logger zerolog.Logger,
) *StreamService {
	return &StreamService{
		accountRepo: accountRepo,
		termRepo:    termRepo,
		aliases:     aliases,
		logger:      logger,
	}
}

// RedirectTarget returns the URL the user with the given id should be sent to.
// userID 0 is the anonymous user. Missing data yields FrontPath with a warning;
// only storage failures are returned as errors.
func (s *StreamService) RedirectTarget(ctx context.Context, userID int64) (string, error) {
	account, err := s.loadAccount(ctx, userID)
	if err != nil {
		return "", err
	}
	if account == nil {
		s.logger.Warn().Msgf("Unable to load user entity for ID %d.", userID)
		return FrontPath, nil
	}

	s.logger.Debug().
		Int64("id", account.ID).
		Str("name", account.Name).
		Str("email", account.Email).
		Interface("roles", account.Roles).
		Interface("stream_id", account.StreamID).
		Msg("User data")

	if account.StreamID == nil || *account.StreamID == 0 {
		s.logger.Warn().Msg("No valid stream term ID found for user.")
		return FrontPath, nil
	}

	termID := *account.StreamID
	if _, err := s.termRepo.Load(ctx, termID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Msgf("Taxonomy term with ID %d not found.", termID)
			return FrontPath, nil
		}
		return "", err
	}

	streamURL, err := s.aliases.GetAliasByPath(ctx, models.TermSystemPath(termID))
	if err != nil {
		return "", err
	}

	s.logger.Info().Msgf("Redirecting to stream URL: %s", streamURL)
	return streamURL, nil
}

func (s *StreamService) loadAccount(ctx context.Context, userID int64) (*models.Account, error) {
	if userID <= 0 {
		return nil, nil
	}
	account, err := s.accountRepo.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}
