package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/views"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// TermPages loads terms and resolves path aliases
type TermPages interface {
	LoadTerm(ctx context.Context, id int64) (*models.Term, error)
	GetPathByAlias(ctx context.Context, alias string) (string, error)
}

// TaxonomyController renders term pages
type TaxonomyController struct {
	terms    TermPages
	siteName string
	logger   zerolog.Logger
}

// NewTaxonomyController creates a new TaxonomyController
func NewTaxonomyController(terms TermPages, siteName string, logger zerolog.Logger) *TaxonomyController {
	return &TaxonomyController{
		terms:    terms,
		siteName: siteName,
		logger:   logger,
	}
}

// ShowTerm renders /taxonomy/term/:id
func (c *TaxonomyController) ShowTerm(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.notFound(ctx)
		return
	}
	c.renderTerm(ctx, id)
}

// ResolveAlias serves aliased paths such as /streams/computer-science. It is
// mounted as the NoRoute handler.
func (c *TaxonomyController) ResolveAlias(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead {
		c.notFound(ctx)
		return
	}

	path, err := c.terms.GetPathByAlias(ctx.Request.Context(), ctx.Request.URL.Path)
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			c.logger.Error().Err(err).Str("alias", ctx.Request.URL.Path).Msg("Failed to resolve path alias")
			middleware.HandleAPIError(ctx, err)
			return
		}
		c.notFound(ctx)
		return
	}

	id, ok := models.ParseTermSystemPath(path)
	if !ok {
		c.notFound(ctx)
		return
	}
	c.renderTerm(ctx, id)
}

func (c *TaxonomyController) renderTerm(ctx *gin.Context, id int64) {
	term, err := c.terms.LoadTerm(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			c.notFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("termId", id).Msg("Failed to load term")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, views.TermPage, views.Page{
		Title:    term.Label(),
		SiteName: c.siteName,
		Messages: pageMessages(ctx),
		Term:     &views.TermView{ID: term.ID, Vocabulary: term.Vocabulary},
	})
}

func (c *TaxonomyController) notFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, views.TermPage, views.Page{
		Title:    "Page not found",
		SiteName: c.siteName,
		Error:    "The requested page could not be found.",
	})
}
