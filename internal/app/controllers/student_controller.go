package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/app/services"
	"github.com/yigit/conduct/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentController handles student profiles, bulk import and per-student stats
type StudentController struct {
	studentService services.StudentService
	importService  services.ImportService
	maxImportBytes int64
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController; import uploads are limited to maxImportBytes
func NewStudentController(studentService services.StudentService, importService services.ImportService, maxImportBytes int64, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
		maxImportBytes: maxImportBytes,
		logger:         logger,
	}
}

// ListStudents lists students with their behavior counts
// @Summary List students
// @Description Lists students, optionally filtered, each with violation and excellent counts
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param grade query string false "Grade, e.g. 高一"
// @Param class query string false "Class"
// @Param search query string false "Matches name or student number"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentSummary} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var query dto.StudentListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), repositories.StudentFilter{
		Grade:  query.Grade,
		Class:  query.Class,
		Search: query.Search,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetStudent retrieves a student by ID
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// CreateStudent handles student creation
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// UpdateStudent replaces a student record
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.StudentRequest true "Full student record"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student number already exists"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student")
	if !ok {
		return
	}
	var req dto.StudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student := req.ToModel()
	student.ID = id
	updated, err := c.studentService.UpdateStudent(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// DeleteStudent deletes a student without behavior records
// @Summary Delete student
// @Description Deletes a student. Students that still have behavior records are refused with 409.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student has behavior records"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Student deleted successfully"}))
}

// GetBehaviorStats summarizes a student's behaviors per type
// @Summary Student behavior stats
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.StudentTypeStat} "Stats retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/behavior-stats [get]
func (c *StudentController) GetBehaviorStats(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student")
	if !ok {
		return
	}

	stats, err := c.studentService.GetBehaviorStats(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// ImportStudents bulk imports students from a spreadsheet
// @Summary Import students
// @Description Imports students from an .xlsx or .csv file. Rows that fail are reported individually; the rest are stored.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet with 学号, 姓名, 年级 columns"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format, oversized or unreadable file, or missing columns"
// @Failure 500 {object} dto.ErrorResponse "Storage failure, nothing was imported"
// @Router /students/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	fileHeader, ok := formFile(ctx, c.maxImportBytes)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.importService.ImportStudents(ctx.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// DownloadTemplate returns the import template workbook
// @Summary Download import template
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Template workbook"
// @Router /students/template [get]
func (c *StudentController) DownloadTemplate(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.importService.WriteTemplate(&buf); err != nil {
		c.logger.Error().Err(err).Msg("Failed to build import template")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="student_template.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
