package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/pkg/filestorage"
)

// UploadController stores student photos and behavior evidence images
type UploadController struct {
	storage  filestorage.FileStorage
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploadController creates a new UploadController accepting files up to maxBytes
func NewUploadController(storage filestorage.FileStorage, maxBytes int64, logger zerolog.Logger) *UploadController {
	return &UploadController{
		storage:  storage,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// UploadImage stores an image and returns its URL
// @Summary Upload image
// @Description Accepts jpg, png or gif. Large images are downscaled.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "Stored image URL"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /upload [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	fileHeader, ok := formFile(ctx, c.maxBytes)
	if !ok {
		return
	}

	url, err := c.storage.SaveImage(fileHeader, "images")
	if err != nil {
		if errors.Is(err, filestorage.ErrUnsupportedImage) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnsupportedFormat, "Only jpg, png and gif images are accepted").WithField("file")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store uploaded image")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to store file")))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UploadResponse{URL: url}))
}
