package filestorage

import (
	"errors"
	"io"
	"mime/multipart"
)

// ErrUnsupportedImage is returned when an upload is not a decodable jpeg, png or gif
var ErrUnsupportedImage = errors.New("unsupported image")

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveImage decodes an uploaded image, downscales it if needed and returns its public URL
	SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// StageTemp copies r into a temporary file that keeps the extension of filename.
	// The returned cleanup removes the file and is safe to call more than once.
	StageTemp(r io.Reader, filename string) (path string, cleanup func(), err error)

	// DeleteFile removes a stored file by its public URL
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
