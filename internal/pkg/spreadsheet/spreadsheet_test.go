package spreadsheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "students.xlsx", want: FormatXLSX},
		{name: "STUDENTS.XLSX", want: FormatXLSX},
		{name: "students.csv", want: FormatCSV},
		{name: "students.xls", wantErr: true},
		{name: "students.txt", wantErr: true},
		{name: "students", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadXLSXKeepsPhysicalRowNumbers(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{" 学号 ", "姓名", "年级"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"S001", "张三", "高一"}))
	// row 3 left blank
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{2024001, "李四", "高二"}))
	path := filepath.Join(t.TempDir(), "students.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadFile(path, FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, []string{"学号", "姓名", "年级"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, 2, table.Rows[0].Number)
	assert.True(t, table.Rows[1].IsEmpty())
	assert.Equal(t, 4, table.Rows[2].Number)
	assert.Equal(t, "2024001", table.Rows[2].Cell(0))
	assert.Equal(t, "", table.Rows[2].Cell(7))
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffstudent_id,name,grade\nS001,Alice,高一\n\nS002,\"Bob\nJr\",高二\nS003,Carol,高三\n"

	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"student_id", "name", "grade"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, 2, table.Rows[0].Number)
	assert.Equal(t, 4, table.Rows[1].Number, "blank line still counts")
	assert.Equal(t, 6, table.Rows[2].Number, "multi-line field shifts later rows")
	assert.Equal(t, "Carol", table.Rows[2].Cell(1))
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), FormatCSV)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	header := []string{"学号", "姓名", "年级"}
	err := WriteTemplate(&buf, "学生信息", header, [][]string{{"0001", "张三", "高一"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"学生信息"}, f.GetSheetList())
	rows, err := f.GetRows("学生信息")
	require.NoError(t, err)
	assert.Equal(t, [][]string{header, {"0001", "张三", "高一"}}, rows)
}
