package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/dberrors"
	"github.com/yigit/conduct/internal/pkg/filestorage"
	"github.com/yigit/conduct/internal/pkg/spreadsheet"
)

// TemplateSheetName is the sheet name of the downloadable import template
const TemplateSheetName = "学生信息"

// importColumn maps a spreadsheet header to a student field
type importColumn struct {
	header   string
	alias    string
	required bool
	set      func(s *models.Student, v string)
}

var importColumns = []importColumn{
	{header: "学号", alias: "student_id", required: true, set: func(s *models.Student, v string) { s.StudentID = v }},
	{header: "姓名", alias: "name", required: true, set: func(s *models.Student, v string) { s.Name = v }},
	{header: "年级", alias: "grade", required: true, set: func(s *models.Student, v string) { s.Grade = v }},
	{header: "班级", alias: "class", set: func(s *models.Student, v string) { s.Class = v }},
	{header: "家庭住址", alias: "address", set: func(s *models.Student, v string) { s.Address = v }},
	{header: "紧急联系人", alias: "emergency_contact", set: func(s *models.Student, v string) { s.EmergencyContact = v }},
	{header: "联系人电话", alias: "emergency_phone", set: func(s *models.Student, v string) { s.EmergencyPhone = v }},
	{header: "备注", alias: "notes", set: func(s *models.Student, v string) { s.Notes = v }},
}

var templateExamples = [][]string{
	{"2024001", "张三", "高一", "1班", "北京市海淀区", "张父", "13800000001", ""},
	{"2024002", "李四", "高二", "3班", "北京市朝阳区", "李母", "13800000002", "住校"},
}

// ImportService handles bulk student import from spreadsheets
type ImportService interface {
	ImportStudents(ctx context.Context, r io.Reader, filename string) (*dto.ImportResult, error)
	WriteTemplate(w io.Writer) error
}

type importServiceImpl struct {
	importRepo repositories.IStudentImportRepository
	storage    filestorage.FileStorage
	logger     zerolog.Logger
}

// NewImportService creates a new import service
func NewImportService(importRepo repositories.IStudentImportRepository, storage filestorage.FileStorage, logger zerolog.Logger) ImportService {
	return &importServiceImpl{
		importRepo: importRepo,
		storage:    storage,
		logger:     logger,
	}
}

// boundColumn is an importColumn located in a concrete header row
type boundColumn struct {
	importColumn
	index int
	label string
}

// resolveColumns finds every known column in header. Missing required columns are
// reported together.
func resolveColumns(header []string) ([]boundColumn, error) {
	positions := map[string]int{}
	for i, h := range header {
		if _, seen := positions[h]; !seen && h != "" {
			positions[h] = i
		}
	}

	var bound []boundColumn
	var missing []string
	for _, col := range importColumns {
		idx, label := -1, col.header
		if i, ok := positions[col.header]; ok {
			idx = i
		} else if i, ok := positions[col.alias]; ok {
			idx, label = i, col.alias
		}

		if idx < 0 {
			if col.required {
				missing = append(missing, col.header)
			}
			continue
		}
		bound = append(bound, boundColumn{importColumn: col, index: idx, label: label})
	}

	if len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(missing)
	}
	return bound, nil
}

// ImportStudents stages the upload, validates its header and inserts every row it can.
// Row problems are collected in the result; only structural or storage failures return an error.
func (s *importServiceImpl) ImportStudents(ctx context.Context, r io.Reader, filename string) (*dto.ImportResult, error) {
	format, err := spreadsheet.DetectFormat(filename)
	if err != nil {
		return nil, apperrors.NewUnsupportedFormatError(filename)
	}

	path, cleanup, err := s.storage.StageTemp(r, filename)
	if err != nil {
		return nil, apperrors.NewStorageFailure("stage upload", err)
	}
	defer cleanup()

	table, err := spreadsheet.ReadFile(path, format)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Msg("Unreadable import file")
		return nil, apperrors.NewValidationError("file", fmt.Sprintf("could not read %s file", format))
	}

	columns, err := resolveColumns(table.Header)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{ErrorMessages: []string{}}
	err = s.importRepo.RunBatch(ctx, func(ctx context.Context, batch repositories.StudentBatch) error {
		for _, row := range table.Rows {
			if row.IsEmpty() {
				continue
			}
			msg, err := s.importRow(ctx, batch, columns, row)
			if err != nil {
				return err
			}
			if msg != "" {
				result.ErrorCount++
				result.ErrorMessages = append(result.ErrorMessages, msg)
				continue
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("Student import aborted")
		var ce *apperrors.CustomError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, apperrors.NewStorageFailure("import students", err)
	}

	s.logger.Info().
		Str("filename", filename).
		Int("success", result.SuccessCount).
		Int("errors", result.ErrorCount).
		Msg("Student import finished")
	return result, nil
}

// importRow inserts one row. A non-empty message is a row failure; an error aborts the batch.
func (s *importServiceImpl) importRow(ctx context.Context, batch repositories.StudentBatch, columns []boundColumn, row spreadsheet.Row) (string, error) {
	student := &models.Student{}
	for _, col := range columns {
		v := row.Cell(col.index)
		if col.required && v == "" {
			return fmt.Sprintf("Row %d: %s is required", row.Number, col.label), nil
		}
		col.set(student, v)
	}

	exists, err := batch.ExistsByStudentID(ctx, student.StudentID)
	if err != nil {
		return "", apperrors.NewStorageFailure("check student_id", err)
	}
	if exists {
		return fmt.Sprintf("Row %d: student_id %s already exists", row.Number, student.StudentID), nil
	}

	err = batch.InsertIsolated(ctx, student)
	if err == nil {
		return "", nil
	}
	if errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
		return fmt.Sprintf("Row %d: student_id %s already exists", row.Number, student.StudentID), nil
	}
	if msg, ok := dberrors.ServerMessage(err); ok {
		return fmt.Sprintf("Row %d: %s", row.Number, msg), nil
	}
	return "", apperrors.NewStorageFailure("insert student", err)
}

// WriteTemplate writes the import template workbook
func (s *importServiceImpl) WriteTemplate(w io.Writer) error {
	header := make([]string, len(importColumns))
	for i, col := range importColumns {
		header[i] = col.header
	}
	return spreadsheet.WriteTemplate(w, TemplateSheetName, header, templateExamples)
}
