package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/middleware"
)

// TemporaryFileSaver stores uploads as temporary managed files
type TemporaryFileSaver interface {
	SaveTemporary(ctx context.Context, header *multipart.FileHeader, ownerID *int64) (*models.File, error)
}

// FileController handles managed file uploads
type FileController struct {
	files  TemporaryFileSaver
	logger zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(files TemporaryFileSaver, logger zerolog.Logger) *FileController {
	return &FileController{
		files:  files,
		logger: logger,
	}
}

// Upload stores a picture as a temporary file
// @Summary Upload a picture
// @Description Stores the picture as a temporary file. The returned fid can be submitted as picture_fid with the registration form; unclaimed files are removed after a while.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Picture (png, jpg, jpeg, gif)"
// @Success 201 {object} dto.APIResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Missing file, bad extension or too large"
// @Failure 503 {object} dto.APIResponse{error=dto.ErrorDetail} "Storage unavailable"
// @Router /file/upload [post]
func (c *FileController) Upload(ctx *gin.Context) {
	header, err := uploadedPicture(ctx)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A picture file is required").WithField("picture").
			WithDetails("Send the file in the 'picture' multipart field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	var ownerID *int64
	if uid := middleware.CurrentUserID(ctx); uid > 0 {
		ownerID = &uid
	}

	file, err := c.files.SaveTemporary(ctx.Request.Context(), header, ownerID)
	if err != nil {
		c.logger.Warn().Err(err).Str("filename", header.Filename).Msg("Picture upload rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FileUploadResponse{
		FID:      file.ID,
		FileName: file.FileName,
		URL:      file.FileURL,
		MimeType: file.MimeType,
		Size:     file.FileSize,
	}))
}

// uploadedPicture accepts both the "files[picture]" and "picture" field names
func uploadedPicture(ctx *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range []string{"files[picture]", "picture"} {
		header, err := ctx.FormFile(field)
		if err == nil {
			return header, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
	}
	return nil, http.ErrMissingFile
}
