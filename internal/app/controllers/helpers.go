package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/conduct/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter, answering 400 when it is not one
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindJSON binds and validates the request body in one step
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// multipartOverhead is the room left for boundaries and part headers on top of the file itself
const multipartOverhead = 1 << 20

// formFile reads the "file" part of a multipart request. With maxBytes > 0 the body is
// capped before it is parsed and a larger file is answered with 400.
func formFile(ctx *gin.Context, maxBytes int64) (*multipart.FileHeader, bool) {
	if maxBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes+multipartOverhead)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondFileTooLarge(ctx, maxBytes)
			return nil, false
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No file uploaded").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	if maxBytes > 0 && fileHeader.Size > maxBytes {
		respondFileTooLarge(ctx, maxBytes)
		return nil, false
	}
	return fileHeader, true
}

func respondFileTooLarge(ctx *gin.Context, maxBytes int64) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File too large").
		WithField("file").
		WithDetails(fmt.Sprintf("maximum size is %d bytes", maxBytes))
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
