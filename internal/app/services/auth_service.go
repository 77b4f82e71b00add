package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// TokenIssuer signs session tokens
type TokenIssuer interface {
	GenerateToken(account *models.Account) (token string, expiresIn int64, err error)
}

// AuthService handles authentication operations
type AuthService struct {
	accountRepo repositories.IAccountRepository
	tokens      TokenIssuer
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo repositories.IAccountRepository, tokens TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// Login checks the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	login := strings.TrimSpace(req.Name)
	if login == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByNameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		s.logger.Warn().Str("login", login).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.tokens.GenerateToken(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accountID", account.ID).Msg("Session opened")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		UserID:      account.ID,
	}, nil
}
