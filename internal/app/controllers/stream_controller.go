package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/views"
	"github.com/yigit/studentportal/internal/middleware"
)

// StreamRedirector resolves where a user's stream page lives
type StreamRedirector interface {
	RedirectTarget(ctx context.Context, userID int64) (string, error)
}

// VocabularyLister lists the terms of a vocabulary
type VocabularyLister interface {
	ListVocabulary(ctx context.Context, vid string) ([]dto.StreamResponse, error)
}

// StreamController sends users to their stream page
type StreamController struct {
	redirector StreamRedirector
	vocabulary VocabularyLister
	vid        string
	siteName   string
	logger     zerolog.Logger
}

// NewStreamController creates a new StreamController
func NewStreamController(redirector StreamRedirector, vocabulary VocabularyLister, vid, siteName string, logger zerolog.Logger) *StreamController {
	return &StreamController{
		redirector: redirector,
		vocabulary: vocabulary,
		vid:        vid,
		siteName:   siteName,
		logger:     logger,
	}
}

// ShowFront renders the front page with links to every stream.
// It is where the redirector and logout land, so a storage failure only empties the list.
func (c *StreamController) ShowFront(ctx *gin.Context) {
	page := views.Page{
		Title:    "Welcome",
		SiteName: c.siteName,
		Messages: pageMessages(ctx),
	}

	streams, err := c.vocabulary.ListVocabulary(ctx.Request.Context(), c.vid)
	if err != nil {
		c.logger.Error().Err(err).Str("vid", c.vid).Msg("Failed to list streams for the front page")
	}
	for _, stream := range streams {
		page.Streams = append(page.Streams, views.StreamOption{ID: stream.ID, Name: stream.Name, URL: stream.URL})
	}

	ctx.HTML(http.StatusOK, views.FrontPage, page)
}

// RedirectToStream redirects the current user to their stream's page
// @Summary Redirect to the user's stream
// @Description Redirects to the alias of the current user's stream term, or to the front page when the user has no valid stream.
// @Tags streams
// @Success 302 "Redirect to the stream page or /"
// @Failure 503 {object} dto.APIResponse{error=dto.ErrorDetail} "Storage unavailable"
// @Router /user/stream [get]
func (c *StreamController) RedirectToStream(ctx *gin.Context) {
	target, err := c.redirector.RedirectTarget(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to resolve stream redirect")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, target)
}

// ListStreams returns the stream vocabulary
// @Summary List streams
// @Description Returns every term of the stream vocabulary with its public URL
// @Tags streams
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StreamResponse}
// @Failure 503 {object} dto.APIResponse{error=dto.ErrorDetail} "Storage unavailable"
// @Router /api/v1/streams [get]
func (c *StreamController) ListStreams(ctx *gin.Context) {
	streams, err := c.vocabulary.ListVocabulary(ctx.Request.Context(), c.vid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(streams))
}
