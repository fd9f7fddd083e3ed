package filestorage

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(width, height, color.White)))
	return buf.Bytes()
}

func TestSaveImageDownscales(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	url, err := ls.SaveImage(fileHeader(t, "evidence.PNG", pngBytes(t, 3200, 800)), "images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	saved, err := imaging.Open(ls.GetFullPath(url))
	require.NoError(t, err)
	assert.Equal(t, MaxImageDimension, saved.Bounds().Dx())
	assert.Equal(t, 400, saved.Bounds().Dy())

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(ls.GetFullPath(url))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = ls.SaveImage(fileHeader(t, "notes.txt", []byte("hello")), "images")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = ls.SaveImage(fileHeader(t, "fake.jpg", []byte("not really a jpeg")), "images")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestStageTempCleanup(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	path, cleanup, err := ls.StageTemp(strings.NewReader("a,b\n1,2\n"), "Students.CSV")
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(content))

	cleanup()
	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStageTempRemovesPartialFile(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, _, err = ls.StageTemp(failingReader{}, "students.xlsx")
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(ls.BasePath(), "tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetFullPathStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "images", "a.png"), ls.GetFullPath("/uploads/images/a.png"))
	assert.Equal(t, filepath.Join(base, "etc", "passwd"), ls.GetFullPath("/uploads/../../etc/passwd"))
	assert.Equal(t, "", ls.GetFullPath("/uploads"))
	assert.Equal(t, "", ls.GetFullPath("/uploadsX/a.png"))
	assert.Equal(t, "", ls.GetFullPath("https://cdn.example.com/a.png"))
}
