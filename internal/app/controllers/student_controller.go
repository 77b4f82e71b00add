package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/middleware"
)

// StudentLister lists students by filter
type StudentLister interface {
	ListStudents(ctx context.Context, filter dto.StudentFilter) ([]dto.StudentRecord, error)
}

// StudentController serves the student list API
type StudentController struct {
	students StudentLister
	logger   zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(students StudentLister, logger zerolog.Logger) *StudentController {
	return &StudentController{
		students: students,
		logger:   logger,
	}
}

// ListStudents returns active students matching the query filters
// @Summary List students
// @Description Returns active accounts with the student role. Every supplied filter must match; empty filters are ignored.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param stream query int false "Stream term ID"
// @Param joining_year query int false "Joining year"
// @Param passing_year query int false "Passing year"
// @Param users_phone query string false "Phone number"
// @Success 200 {array} dto.StudentRecord
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Non-numeric filter"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.APIResponse{error=dto.ErrorDetail} "Storage unavailable"
// @Router /api/v1/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	records, err := c.students.ListStudents(ctx.Request.Context(), filter)
	if err != nil {
		c.logger.Warn().Err(err).Interface("filter", filter).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}
