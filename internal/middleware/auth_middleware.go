package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID"
	ContextName   = "name"
	ContextRoles  = "roles"
)

// TokenValidator validates session tokens
type TokenValidator interface {
	ValidateAndExtractClaims(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	tokens     TokenValidator
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware. cookieName is the session cookie
// browsers carry the token in.
func NewAuthMiddleware(tokens TokenValidator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		cookieName: cookieName,
	}
}

// tokenFromRequest reads the token from the Authorization header, falling back to the session cookie
func (m *AuthMiddleware) tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, err := auth.ExtractBearerToken(header); err == nil {
			return token
		}
		return ""
	}
	if m.cookieName != "" {
		if token, err := c.Cookie(m.cookieName); err == nil {
			return token
		}
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *gin.Context) error {
	tokenString := m.tokenFromRequest(c)
	if tokenString == "" {
		return apperrors.ErrUnauthenticated
	}

	claims, err := m.tokens.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return err
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextName, claims.Name)
	c.Set(ContextRoles, claims.Roles)
	return nil
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.authenticate(c); err != nil {
			errorCode := dto.ErrorCodeUnauthorized
			errorDetails := "Authorization header missing"

			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			case errors.Is(err, apperrors.ErrTokenInvalid):
				errorCode = dto.ErrorCodeInvalidToken
				errorDetails = "Invalid token"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication required").WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// OptionalAuth identifies the user when a valid token is present and lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = m.authenticate(c)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or 0 for anonymous requests
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
