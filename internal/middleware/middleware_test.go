package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	r := gin.New()
	r.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("start_date", "bad date"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"wrapped validation", fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unsupported format", apperrors.NewUnsupportedFormatError("a.xls"), http.StatusBadRequest, dto.ErrorCodeUnsupportedFormat},
		{"missing columns", apperrors.NewMissingColumnsError([]string{"年级"}), http.StatusBadRequest, dto.ErrorCodeMissingColumns},
		{"not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate", apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"delete refused", apperrors.ErrStudentHasBehaviors, http.StatusConflict, dto.ErrorCodeConflict},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"storage", apperrors.NewStorageFailure("import", errors.New("conn reset")), http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
		{"unknown", errors.New("pq: password authentication failed for user postgres"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorMessages(t *testing.T) {
	_, body := serveError(t, apperrors.NewValidationError("end_date", "end_date must be YYYY-MM-DD or RFC3339"))
	assert.Equal(t, "end_date must be YYYY-MM-DD or RFC3339", body.Error.Message)
	assert.Equal(t, "end_date", body.Error.Field)

	_, body = serveError(t, apperrors.ErrStudentHasBehaviors)
	assert.Contains(t, body.Error.Message, "cannot be deleted")

	_, body = serveError(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, "Internal server error", body.Error.Message, "internal detail is never echoed")
}

type stubUserRepo struct {
	users map[int64]*models.User
}

func (s *stubUserRepo) Create(context.Context, *models.User) (int64, error) { return 0, nil }
func (s *stubUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (s *stubUserRepo) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "conduct"})
	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	repo := &stubUserRepo{users: map[int64]*models.User{1: admin}}
	m := NewAuthMiddleware(jwtService, repo)

	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUsername), "id": c.GetInt64(ContextUserID)})
	})

	valid, _, err := jwtService.GenerateAccessToken(admin)
	require.NoError(t, err)
	orphan, _, err := jwtService.GenerateAccessToken(&models.User{ID: 2, Username: "gone"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + valid + "x", http.StatusUnauthorized},
		{"deleted user", "Bearer " + orphan, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"raw token", valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user":"admin","id":1}`, w.Body.String())
			}
		})
	}
}
