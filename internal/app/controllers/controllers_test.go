package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterBindingRules(); err != nil {
		panic(err)
	}
}

type stubStudentService struct {
	deleteErr error
	created   *models.Student
}

func (s *stubStudentService) CreateStudent(_ context.Context, st *models.Student) (*models.Student, error) {
	st.ID = 1
	s.created = st
	return st, nil
}
func (s *stubStudentService) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}
func (s *stubStudentService) ListStudents(context.Context, repositories.StudentFilter) ([]models.StudentSummary, error) {
	return []models.StudentSummary{}, nil
}
func (s *stubStudentService) UpdateStudent(_ context.Context, st *models.Student) (*models.Student, error) {
	return st, nil
}
func (s *stubStudentService) DeleteStudent(context.Context, int64) error { return s.deleteErr }
func (s *stubStudentService) GetBehaviorStats(context.Context, int64) ([]models.StudentTypeStat, error) {
	return []models.StudentTypeStat{}, nil
}

type stubImportService struct {
	filename string
	body     string
	result   *dto.ImportResult
	err      error
}

func (s *stubImportService) ImportStudents(_ context.Context, r io.Reader, filename string) (*dto.ImportResult, error) {
	b, _ := io.ReadAll(r)
	s.filename, s.body = filename, string(b)
	return s.result, s.err
}
func (s *stubImportService) WriteTemplate(w io.Writer) error {
	_, err := w.Write([]byte("PK"))
	return err
}

type stubStatisticsService struct {
	grade, start, end string
	days              int
	err               error
}

func (s *stubStatisticsService) GetStatistics(_ context.Context, grade, start, end string) (*models.Statistics, error) {
	s.grade, s.start, s.end = grade, start, end
	if s.err != nil {
		return nil, s.err
	}
	return &models.Statistics{}, nil
}
func (s *stubStatisticsService) GetBehaviorTrends(_ context.Context, days int) (*models.BehaviorTrends, error) {
	s.days = days
	return &models.BehaviorTrends{}, nil
}
func (s *stubStatisticsService) GetGradeComparison(context.Context) (*models.GradeComparison, error) {
	return &models.GradeComparison{}, nil
}
func (s *stubStatisticsService) GetBehaviorTypeStats(context.Context) ([]models.BehaviorTypeCount, error) {
	return nil, apperrors.NewStorageFailure("type stats", io.ErrUnexpectedEOF)
}

const testImportLimit = 1024

func studentRouter(students *stubStudentService, imports *stubImportService) *gin.Engine {
	c := NewStudentController(students, imports, testImportLimit, zerolog.Nop())
	r := gin.New()
	r.GET("/students/template", c.DownloadTemplate)
	r.POST("/students/import", c.ImportStudents)
	r.POST("/students", c.CreateStudent)
	r.GET("/students/:id", c.GetStudent)
	r.DELETE("/students/:id", c.DeleteStudent)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestDeleteStudentWithBehaviorsIsConflict(t *testing.T) {
	r := studentRouter(&stubStudentService{deleteErr: apperrors.ErrStudentHasBehaviors}, &stubImportService{})

	w := do(r, httptest.NewRequest(http.MethodDelete, "/students/3", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeConflict, errorCode(t, w))

	r = studentRouter(&stubStudentService{}, &stubImportService{})
	w = do(r, httptest.NewRequest(http.MethodDelete, "/students/3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStudentIDParam(t *testing.T) {
	r := studentRouter(&stubStudentService{}, &stubImportService{})

	for _, id := range []string{"abc", "0", "-2"} {
		w := do(r, httptest.NewRequest(http.MethodGet, "/students/"+id, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/students/9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateStudentBinding(t *testing.T) {
	students := &stubStudentService{}
	r := studentRouter(students, &stubImportService{})

	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(`{"student_id":"S001","name":"张三"}`))
	req.Header.Set("Content-Type", "application/json")
	w := do(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, students.created)

	req = httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(`{"student_id":"S001","name":"张三","grade":"高一","emergency_phone":"call me"}`))
	req.Header.Set("Content-Type", "application/json")
	w = do(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a phone number")

	req = httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(`{"student_id":" S001 ","name":"张三","grade":"高一","emergency_phone":"+86 138-0000-0000"}`))
	req.Header.Set("Content-Type", "application/json")
	w = do(r, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, students.created)
	assert.Equal(t, "S001", students.created.StudentID)
}

func multipartUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/students/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImportStudentsEndpoint(t *testing.T) {
	imports := &stubImportService{result: &dto.ImportResult{SuccessCount: 1, ErrorMessages: []string{}}}
	r := studentRouter(&stubStudentService{}, imports)

	w := do(r, multipartUpload(t, "file", "students.csv", "学号,姓名,年级\nS001,张三,高一\n"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "students.csv", imports.filename)
	assert.Contains(t, imports.body, "S001")
	assert.Contains(t, w.Body.String(), `"success_count":1`)

	w = do(r, multipartUpload(t, "upload", "students.csv", "x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	imports.err = apperrors.NewMissingColumnsError([]string{"年级"})
	w = do(r, multipartUpload(t, "file", "students.csv", "学号,姓名\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeMissingColumns, errorCode(t, w))
}

func TestImportStudentsSizeLimit(t *testing.T) {
	imports := &stubImportService{result: &dto.ImportResult{ErrorMessages: []string{}}}
	r := studentRouter(&stubStudentService{}, imports)

	w := do(r, multipartUpload(t, "file", "students.csv", strings.Repeat("a", testImportLimit+1)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File too large")

	w = do(r, multipartUpload(t, "file", "students.csv", strings.Repeat("a", 2<<20)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, imports.filename, "oversized uploads never reach the import")

	w = do(r, multipartUpload(t, "file", "students.csv", strings.Repeat("a", testImportLimit)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "students.csv", imports.filename)
}

func TestDownloadTemplate(t *testing.T) {
	r := studentRouter(&stubStudentService{}, &stubImportService{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/students/template", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "student_template.xlsx")
	assert.Equal(t, "PK", w.Body.String())
}

func statisticsRouter(stats *stubStatisticsService) *gin.Engine {
	c := NewStatisticsController(stats)
	r := gin.New()
	r.GET("/statistics", c.GetStatistics)
	r.GET("/statistics/behavior-trends", c.GetBehaviorTrends)
	r.GET("/statistics/behavior-types", c.GetBehaviorTypeStats)
	return r
}

func TestStatisticsQueryPassing(t *testing.T) {
	stats := &stubStatisticsService{}
	r := statisticsRouter(stats)

	w := do(r, httptest.NewRequest(http.MethodGet, "/statistics?grade=%E9%AB%98%E4%B8%80&start_date=2024-03-01&end_date=2024-03-31", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "高一", stats.grade)
	assert.Equal(t, "2024-03-01", stats.start)
	assert.Equal(t, "2024-03-31", stats.end)

	stats.err = apperrors.NewValidationError("start_date", "start_date must be YYYY-MM-DD or RFC3339")
	w = do(r, httptest.NewRequest(http.MethodGet, "/statistics?start_date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))
}

func TestBehaviorTrendsDaysBounds(t *testing.T) {
	stats := &stubStatisticsService{}
	r := statisticsRouter(stats)

	w := do(r, httptest.NewRequest(http.MethodGet, "/statistics/behavior-trends?days=30", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, stats.days)

	for _, q := range []string{"days=1000", "days=-1", "days=week"} {
		w = do(r, httptest.NewRequest(http.MethodGet, "/statistics/behavior-trends?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestStatisticsStorageFailureIs500(t *testing.T) {
	r := statisticsRouter(&stubStatisticsService{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/statistics/behavior-types", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeDatabaseError, errorCode(t, w))
}
