package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/logger"
)

// HandleAPIError maps a service error onto a status code and an error envelope.
// Only messages from apperrors.CustomError or the sentinels themselves reach the
// client; unexpected errors are logged and answered with a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// userMessage prefers the CustomError message and falls back to the given text
func userMessage(err error, fallback string) string {
	if msg, ok := apperrors.UserMessage(err); ok {
		return msg
	}
	return fallback
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeUnsupportedFormat, userMessage(err, "Unsupported file format"))

	case errors.Is(err, apperrors.ErrMissingColumns):
		detail := dto.NewErrorDetail(dto.ErrorCodeMissingColumns, userMessage(err, "Missing required columns"))
		var ce *apperrors.CustomError
		if errors.As(err, &ce) && ce.Details != nil {
			detail = detail.WithDetails(ce.Details)
		}
		return http.StatusBadRequest, detail

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validationMessage(err))
		var ce *apperrors.CustomError
		if errors.As(err, &ce) {
			if field, ok := ce.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		return http.StatusBadRequest, detail

	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, userMessage(err, sentinelText(err)))

	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, userMessage(err, sentinelText(err)))

	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, userMessage(err, sentinelText(err)))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")

	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrStorageFailure):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Storage is unavailable, please retry later")

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// validationMessage handles both CustomError and plain "%w: msg" validation errors
func validationMessage(err error) string {
	if msg, ok := apperrors.UserMessage(err); ok {
		return msg
	}
	return err.Error()
}

// sentinelText returns the text of the outermost domain sentinel, for example
// "student not found: resource not found"
func sentinelText(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrStudentNotFound,
		apperrors.ErrBehaviorNotFound,
		apperrors.ErrBehaviorTypeNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentIDAlreadyExists,
		apperrors.ErrBehaviorTypeAlreadyExists,
		apperrors.ErrStudentHasBehaviors,
		apperrors.ErrBehaviorTypeInUse,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Request could not be completed"
}
