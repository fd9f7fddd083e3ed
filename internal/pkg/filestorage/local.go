package filestorage

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/yigit/conduct/internal/pkg/logger"
)

// MaxImageDimension is the longest side a stored image keeps
const MaxImageDimension = 1600

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // URL prefix the base path is served under, "/uploads" by default
	tempDir  string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// Staged uploads go to basePath/tmp.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	tempDir := filepath.Join(basePath, "tmp")
	for _, dir := range []string{basePath, tempDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		tempDir:  tempDir,
	}, nil
}

// BasePath is the directory served under the base URL
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveImage saves an uploaded image under subPath. Images wider or taller than
// MaxImageDimension are resized keeping their aspect ratio.
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedImage, ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	img = downscale(img, MaxImageDimension)

	fullDirPath := filepath.Join(ls.basePath, subPath)
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// Generate a unique filename to prevent collisions
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	if err := imaging.Save(img, dstPath, imaging.JPEGQuality(85)); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write image")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	url := path.Join(ls.baseURL, filepath.ToSlash(subPath), uniqueFilename)
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("Image saved")
	return url, nil
}

func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, maxSide, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxSide, imaging.Lanczos)
}

// StageTemp copies r into a temporary file under the storage temp directory
func (ls *LocalStorage) StageTemp(r io.Reader, filename string) (string, func(), error) {
	tmp, err := os.CreateTemp(ls.tempDir, "upload-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
				logger.Warn().Err(err).Str("path", tmpPath).Msg("Failed to remove temp file")
			}
		})
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("failed to stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("failed to stage upload: %w", err)
	}

	return tmpPath, cleanup, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	physicalPath := ls.GetFullPath(fileURL)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath maps a public URL back to its path under the base directory.
// URLs outside the base URL, or that would escape the base directory, yield "".
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	rel, ok := strings.CutPrefix(fileURL, ls.baseURL+"/")
	if !ok {
		return ""
	}
	rel = path.Clean("/" + rel)
	if rel == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel))
}
