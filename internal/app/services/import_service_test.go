package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/filestorage"
)

type importFixture struct {
	svc     ImportService
	repo    *fakeImportRepo
	storage *filestorage.LocalStorage
}

func newImportFixture(t *testing.T, existing ...string) *importFixture {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	repo := newFakeImportRepo(existing...)
	return &importFixture{
		svc:     NewImportService(repo, storage, zerolog.Nop()),
		repo:    repo,
		storage: storage,
	}
}

func (f *importFixture) assertNoStagedFiles(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.storage.BasePath(), "tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries, "staged upload must be removed")
}

func xlsxUpload(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportDuplicatesAreRowErrors(t *testing.T) {
	fx := newImportFixture(t, "S002")
	upload := xlsxUpload(t, [][]interface{}{
		{"学号", "姓名", "年级", "班级"},
		{"S001", "张三", "高一", "1班"},
		{"S002", "李四", "高一", "1班"},
		{"S003", "王五", "高二", "2班"},
		{"S001", "赵六", "高二", "2班"},
		{"S004", "钱七", "高三", "3班"},
	})

	result, err := fx.svc.ImportStudents(context.Background(), upload, "students.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, []string{
		"Row 3: student_id S002 already exists",
		"Row 5: student_id S001 already exists",
	}, result.ErrorMessages)

	assert.Len(t, fx.repo.students, 4)
	assert.Equal(t, "张三", fx.repo.students["S001"].Name)
	assert.Equal(t, "2班", fx.repo.students["S003"].Class)
	fx.assertNoStagedFiles(t)
}

func TestImportMissingGradeColumn(t *testing.T) {
	fx := newImportFixture(t)
	upload := strings.NewReader("学号,姓名,班级\nS001,张三,1班\n")

	result, err := fx.svc.ImportStudents(context.Background(), upload, "students.csv")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrMissingColumns)
	assert.Contains(t, err.Error(), "年级")
	assert.Zero(t, fx.repo.batches, "no row may be processed")
	fx.assertNoStagedFiles(t)
}

func TestImportNamesAllMissingColumns(t *testing.T) {
	fx := newImportFixture(t)

	_, err := fx.svc.ImportStudents(context.Background(), strings.NewReader("班级\n1班\n"), "students.csv")

	assert.ErrorIs(t, err, apperrors.ErrMissingColumns)
	assert.Equal(t, "missing required columns: 学号, 姓名, 年级", err.Error())
}

func TestImportUnsupportedFormat(t *testing.T) {
	fx := newImportFixture(t)

	for _, name := range []string{"students.xls", "students.txt", "students"} {
		_, err := fx.svc.ImportStudents(context.Background(), strings.NewReader("x"), name)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat, name)
	}
	assert.Zero(t, fx.repo.batches)
}

func TestImportUnreadableWorkbook(t *testing.T) {
	fx := newImportFixture(t)

	_, err := fx.svc.ImportStudents(context.Background(), strings.NewReader("definitely not a zip"), "students.xlsx")

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fx.assertNoStagedFiles(t)
}

func TestImportCSVWithAliasesAndBlankRows(t *testing.T) {
	fx := newImportFixture(t)
	input := "student_id,name,grade,notes\n" +
		"S001,Alice,高一,monitor\n" +
		",,,\n" +
		"S002,,高二,\n" +
		"S003,Carol,高三,\n"

	result, err := fx.svc.ImportStudents(context.Background(), strings.NewReader(input), "Students.CSV")
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, []string{"Row 4: name is required"}, result.ErrorMessages)
	assert.Equal(t, "monitor", fx.repo.students["S001"].Notes)
}

func TestImportServerRejectedRowDoesNotAbort(t *testing.T) {
	fx := newImportFixture(t)
	fx.repo.insertErr["S002"] = fmt.Errorf("error creating student: %w",
		&pgconn.PgError{Code: "22001", Message: "value too long for type character varying(32)"})
	input := "学号,姓名,年级\nS001,张三,高一\nS002,李四,高一\nS003,王五,高一\n"

	result, err := fx.svc.ImportStudents(context.Background(), strings.NewReader(input), "students.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, []string{"Row 3: value too long for type character varying(32)"}, result.ErrorMessages)
	assert.Contains(t, fx.repo.students, "S001")
	assert.Contains(t, fx.repo.students, "S003")
	assert.Equal(t, 3, fx.repo.lastBatch.inserts)
}

func TestImportUniqueViolationOnInsert(t *testing.T) {
	fx := newImportFixture(t)
	fx.repo.insertErr["S001"] = fmt.Errorf("%w: %w", apperrors.ErrStudentIDAlreadyExists, &pgconn.PgError{Code: "23505"})

	result, err := fx.svc.ImportStudents(context.Background(), strings.NewReader("学号,姓名,年级\nS001,张三,高一\n"), "students.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Row 2: student_id S001 already exists"}, result.ErrorMessages)
}

func TestImportStorageFailureAbortsBatch(t *testing.T) {
	fx := newImportFixture(t)
	fx.repo.insertErr["S002"] = errors.New("conn closed")
	input := "学号,姓名,年级\nS001,张三,高一\nS002,李四,高一\nS003,王五,高一\n"

	result, err := fx.svc.ImportStudents(context.Background(), strings.NewReader(input), "students.csv")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
	assert.Empty(t, fx.repo.students, "earlier rows roll back with the batch")
	assert.Equal(t, 2, fx.repo.lastBatch.inserts, "remaining rows are not attempted")
	fx.assertNoStagedFiles(t)
}

func TestImportExistsCheckFailureIsFatal(t *testing.T) {
	fx := newImportFixture(t)
	fx.repo.insertErr["exists:S001"] = errors.New("timeout")

	_, err := fx.svc.ImportStudents(context.Background(), strings.NewReader("学号,姓名,年级\nS001,张三,高一\n"), "students.csv")

	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
}

func TestWriteTemplateHasEveryColumn(t *testing.T) {
	fx := newImportFixture(t)
	var buf bytes.Buffer
	require.NoError(t, fx.svc.WriteTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TemplateSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"学号", "姓名", "年级", "班级", "家庭住址", "紧急联系人", "联系人电话", "备注"}, rows[0])

	// the template itself must import cleanly
	result, err := fx.svc.ImportStudents(context.Background(), bytes.NewReader(mustTemplate(t, fx.svc)), "template.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Zero(t, result.ErrorCount)
}

func mustTemplate(t *testing.T, svc ImportService) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, svc.WriteTemplate(&buf))
	return buf.Bytes()
}
