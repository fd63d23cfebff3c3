package images

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")

// allowed upload extensions, lowercased
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store keeps uploaded reveal images on disk under a single directory and
// serves them by URL path. Filenames are random so uploads cannot collide
// or escape the directory.
type Store struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewStore creates the image directory if needed. urlPrefix is the public
// path the files are served under, e.g. "/static/images".
func NewStore(dir, urlPrefix string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		maxSize:   maxSize,
	}, nil
}

// Dir returns the directory files are stored in
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an uploaded file to disk and returns its public URL path
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if s.maxSize > 0 && header.Size > s.maxSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", s.maxSize)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return s.urlPrefix + "/" + filename, nil
}

// Delete removes a stored image by its public URL path. Unknown or external
// URLs are ignored.
func (s *Store) Delete(imageURL string) error {
	if !strings.HasPrefix(imageURL, s.urlPrefix+"/") {
		return nil
	}
	filename := path.Base(imageURL)
	if filename == "." || filename == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}
