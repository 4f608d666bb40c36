package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"staffdesk/internal/errors"
)

// MaxImageSize is the upload size cap (5 MiB).
const MaxImageSize = 5 << 20

// ImageStore writes uploaded employee images to a directory on disk.
type ImageStore struct {
	dir string
}

// NewImageStore creates a store rooted at dir. The directory is created
// lazily on first save.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Dir returns the storage directory, for static file serving.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Validate checks the media type and size of an upload without storing it.
func (s *ImageStore) Validate(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return errors.NewValidationError("Only JPG and PNG files are allowed")
	}
	if file.Size > MaxImageSize {
		return errors.NewValidationError("Image must not exceed 5 MB")
	}
	return nil
}

// Save validates and stores an upload under a timestamp-based name,
// keeping the original extension. Returns the stored path with forward
// slashes, the form it is persisted and served in.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if err := s.Validate(file); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(file.Filename)
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filepath.ToSlash(dst), nil
}

// Remove deletes a stored image. Removing a path that is already gone
// is not an error.
func (s *ImageStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(filepath.FromSlash(path)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
