package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/views"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/flash"
	"github.com/yigit/studentportal/internal/pkg/validation"
)

// Registrar runs the student registration workflow
type Registrar interface {
	StreamOptions(ctx context.Context) ([]*models.Term, error)
	Register(ctx context.Context, form *dto.StudentRegistrationForm, picture *multipart.FileHeader) (*dto.RegistrationResult, error)
	SendNotifications(ctx context.Context, result *dto.RegistrationResult, form *dto.StudentRegistrationForm)
}

// UploadRules describes accepted pictures on the form
type UploadRules struct {
	Extensions []string
	MaxSize    int64
}

// RegistrationController serves the registration form
type RegistrationController struct {
	registrar Registrar
	siteName  string
	rules     UploadRules
	logger    zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrar Registrar, siteName string, rules UploadRules, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrar: registrar,
		siteName:  siteName,
		rules:     rules,
		logger:    logger,
	}
}

// ShowForm renders the empty registration form
func (c *RegistrationController) ShowForm(ctx *gin.Context) {
	c.render(ctx, http.StatusOK, nil, nil, "")
}

// Submit handles the registration form submission
// @Summary Register a student
// @Description Creates an active student account from the multipart registration form, then redirects to the login page.
// @Tags registration
// @Accept multipart/form-data
// @Produce html
// @Param full_name formData string true "Full name"
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Param mobile_number formData string true "Mobile number"
// @Param stream formData int true "Stream term ID"
// @Param joining_year formData int true "Joining year"
// @Param passing_year formData int true "Passing year"
// @Param picture formData file false "Profile picture (png, jpg, jpeg, gif)"
// @Param picture_fid formData int false "Previously uploaded file ID"
// @Success 303 "Redirect to the login page"
// @Failure 400 "Form re-rendered with errors"
// @Failure 409 "Email or username already taken"
// @Router /user/register [post]
func (c *RegistrationController) Submit(ctx *gin.Context) {
	var form dto.StudentRegistrationForm
	bindErr := ctx.ShouldBind(&form)

	picture, err := ctx.FormFile("picture")
	if err != nil {
		picture = nil
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			c.logger.Warn().Err(err).Msg("Unreadable picture upload")
		}
	}

	if bindErr != nil {
		c.logger.Debug().Err(bindErr).Msg("Registration form failed validation")
		c.render(ctx, http.StatusBadRequest, submittedValues(ctx), middleware.FormatValidationErrors(bindErr), "")
		return
	}

	result, err := c.registrar.Register(ctx.Request.Context(), &form, picture)
	if err != nil {
		c.handleRegisterError(ctx, err)
		return
	}

	flash.Add(ctx, flash.TypeStatus, result.Message)
	c.registrar.SendNotifications(ctx.Request.Context(), result, &form)
	ctx.Redirect(http.StatusSeeOther, result.RedirectTo)
}

func (c *RegistrationController) handleRegisterError(ctx *gin.Context, err error) {
	values := submittedValues(ctx)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.render(ctx, http.StatusBadRequest, values, apperrors.FieldErrors(err), "")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.render(ctx, http.StatusConflict, values,
			map[string]string{"email": "The email address " + values["email"] + " is already taken."}, "")
	case errors.Is(err, apperrors.ErrNameAlreadyExists):
		c.render(ctx, http.StatusConflict, values,
			map[string]string{"full_name": "The username " + values["full_name"] + " is already taken."}, "")
	default:
		c.logger.Error().Err(err).Msg("Registration failed")
		status := middleware.StatusForError(err)
		message := "The registration could not be completed. Please try again later."
		c.render(ctx, status, values, nil, message)
	}
}

func (c *RegistrationController) render(ctx *gin.Context, status int, values, fieldErrors map[string]string, pageError string) {
	terms, err := c.registrar.StreamOptions(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load stream options")
		if pageError == "" {
			pageError = "Streams are temporarily unavailable."
		}
		if status < http.StatusBadRequest {
			status = middleware.StatusForError(err)
		}
	}

	streams := make([]views.StreamOption, 0, len(terms))
	for _, term := range terms {
		streams = append(streams, views.StreamOption{ID: term.ID, Name: term.Label()})
	}

	accept := make([]string, 0, len(c.rules.Extensions))
	for _, ext := range c.rules.Extensions {
		accept = append(accept, "."+ext)
	}

	ctx.HTML(status, views.RegisterPage, views.Page{
		Title:      "Student Registration",
		SiteName:   c.siteName,
		Messages:   pageMessages(ctx),
		Error:      pageError,
		Values:     values,
		Errors:     fieldErrors,
		Streams:    streams,
		Accept:     strings.Join(accept, ","),
		Extensions: strings.Join(c.rules.Extensions, " "),
		MaxSize:    validation.FormatSize(c.rules.MaxSize),
	})
}

// submittedValues echoes the posted fields back into the form, without the password
func submittedValues(ctx *gin.Context) map[string]string {
	values := map[string]string{}
	for _, name := range []string{"full_name", "email", "mobile_number", "stream", "joining_year", "passing_year", "picture_fid"} {
		values[name] = ctx.PostForm(name)
	}
	if fid, err := strconv.ParseInt(values["picture_fid"], 10, 64); err != nil || fid <= 0 {
		values["picture_fid"] = ""
	}
	return values
}

func pageMessages(ctx *gin.Context) []views.Message {
	pending := flash.Pop(ctx)
	messages := make([]views.Message, 0, len(pending))
	for _, m := range pending {
		messages = append(messages, views.Message{Type: m.Type, Text: m.Text})
	}
	return messages
}
