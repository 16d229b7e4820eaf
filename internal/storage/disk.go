package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mediaapi/internal/model"
)

// diskStorage implements Storage on the local filesystem. Files live under
// <root>/<category>/<filename>; category directories are created on demand.
type diskStorage struct {
	root string
}

// NewDisk creates a local-disk storage rooted at the given directory.
// The root is created if absent.
func NewDisk(root string) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &diskStorage{root: root}, nil
}

// path resolves a stored file location. The filename is reduced to its base
// so a crafted name cannot escape the category directory.
func (d *diskStorage) path(category model.Category, filename string) string {
	return filepath.Join(d.root, string(category), filepath.Base(filename))
}

func (d *diskStorage) Save(ctx context.Context, category model.Category, filename string, r io.Reader, opt SaveOptions) error {
	dir := filepath.Join(d.root, string(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create category directory: %w", err)
	}

	f, err := os.Create(d.path(category, filename))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (d *diskStorage) Open(ctx context.Context, category model.Category, filename string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(category, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (d *diskStorage) Delete(ctx context.Context, category model.Category, filename string) error {
	p := d.path(category, filename)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return fmt.Errorf("stat file: %w", err)
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
