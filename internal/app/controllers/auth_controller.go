// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/views"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/flash"
)

// StreamPath is where a freshly logged-in user is sent
const StreamPath = "/user/stream"

// Authenticator checks credentials and issues session tokens
type Authenticator interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// SessionCookie describes the cookie browsers keep the session token in
type SessionCookie struct {
	Name   string
	Secure bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService Authenticator
	cookie      SessionCookie
	siteName    string
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService Authenticator, cookie SessionCookie, siteName string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		siteName:    siteName,
		logger:      logger,
	}
}

// ShowLogin renders the login form
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	c.renderLogin(ctx, http.StatusOK, "", "")
}

// SubmitLogin handles the login form and starts a cookie session
func (c *AuthController) SubmitLogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.renderLogin(ctx, http.StatusBadRequest, ctx.PostForm("name"), "Enter your username and password.")
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		status := middleware.StatusForError(err)
		message := "Unrecognized username or password."
		switch {
		case errors.Is(err, apperrors.ErrAccountDisabled):
			message = "The account has not been activated or is blocked."
		case status >= http.StatusInternalServerError:
			c.logger.Error().Err(err).Msg("Login failed")
			message = "Login is temporarily unavailable. Please try again later."
		}
		c.renderLogin(ctx, status, req.Name, message)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, token.AccessToken, int(token.ExpiresIn), "/", "", c.cookie.Secure, true)
	ctx.Redirect(http.StatusSeeOther, StreamPath)
}

// Logout ends the cookie session
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
	flash.Add(ctx, flash.TypeStatus, "You have been logged out.")
	ctx.Redirect(http.StatusSeeOther, "/user/login")
}

// Login handles API login
// @Summary Login
// @Description Authenticates by account name or email and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}

func (c *AuthController) renderLogin(ctx *gin.Context, status int, name, pageError string) {
	ctx.HTML(status, views.LoginPage, views.Page{
		Title:    "Log in",
		SiteName: c.siteName,
		Messages: pageMessages(ctx),
		Error:    pageError,
		Values:   map[string]string{"name": name},
	})
}
