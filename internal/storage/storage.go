package storage

// Package storage contains file storage abstractions for uploaded images.
// Two drivers exist: local disk (default) and an S3-compatible object store.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"mediaapi/internal/model"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 40 << 20 // 40 MiB

var (
	// ErrUnsupportedType is returned for uploads outside the image allowlist.
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotFound is returned when opening or deleting a file that does not exist.
	ErrNotFound = errors.New("file not found")
)

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/jpg":  {},
}

// SaveOptions carry upload metadata a driver may need.
// Size should be the exact number of bytes when known.
type SaveOptions struct {
	Size        int64
	ContentType string
}

// Storage persists uploaded files under a category-specific location.
// Implementations are safe for concurrent use by multiple goroutines.
type Storage interface {
	// Save writes the file content under <category>/<filename>.
	Save(ctx context.Context, category model.Category, filename string, r io.Reader, opt SaveOptions) error
	// Open returns the stored file content as a streaming reader.
	Open(ctx context.Context, category model.Category, filename string) (io.ReadCloser, error)
	// Delete removes a stored file. Deleting a missing file is an error.
	Delete(ctx context.Context, category model.Category, filename string) error
}

// ValidateImage checks the declared MIME type and size of an incoming upload
// before any bytes are written.
func ValidateImage(contentType string, size int64) error {
	if _, ok := allowedTypes[contentType]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename builds the stored name for an upload: millisecond timestamp prefix,
// lowercased basename with whitespace runs collapsed to hyphens, and the
// original extension appended unchanged.
func Filename(original string, now time.Time) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = whitespace.ReplaceAllString(strings.ToLower(base), "-")
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), base, ext)
}

// PublicURL composes the externally visible URL for a stored file.
func PublicURL(baseURL string, category model.Category, filename string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", strings.TrimRight(baseURL, "/"), category, filename)
}
