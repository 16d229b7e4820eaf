package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"
	"mediaapi/internal/storage"
)

var (
	ErrNoImages       = errors.New("no images provided")
	ErrTooManyFiles   = errors.New("too many files")
	ErrIDRequired     = errors.New("id is required")
	ErrReaderNil      = errors.New("reader is nil")
	ErrRecordNotFound = errors.New("record not found")
)

// maxFilesPerUpload caps the multi-file endpoint.
const maxFilesPerUpload = 10

// Upload is one incoming multipart file.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadResult is returned to the client after a successful upload.
type UploadResult struct {
	InsertedID string     `json:"inserted_id"`
	Images     []string   `json:"images"`
	Item       model.Item `json:"item"`
}

// DeleteResult reports the record-store deletion outcome.
type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ImageDeleteError identifies the image whose file deletion failed.
type ImageDeleteError struct {
	Image string
	Err   error
}

func (e *ImageDeleteError) Error() string {
	return fmt.Sprintf("delete image %q: %v", e.Image, e.Err)
}

func (e *ImageDeleteError) Unwrap() error { return e.Err }

// ItemService defines the use cases for items and their images.
type ItemService interface {
	// UploadSingle stores one image and inserts an item document into the
	// products collection. The single-file endpoint always lands in
	// products; only the multi-file endpoint reads a category from the
	// request.
	UploadSingle(ctx context.Context, up Upload, fields map[string]string) (*UploadResult, error)

	// UploadMultiple stores up to ten images under the given category and
	// inserts one item document whose images list preserves upload order.
	UploadMultiple(ctx context.Context, rawCategory string, ups []Upload, fields map[string]string) (*UploadResult, error)

	// DeleteItem removes each listed image file, then the item record.
	// Files already removed when a later deletion fails stay removed.
	DeleteItem(ctx context.Context, rawCategory, id string, images []string) (*DeleteResult, error)

	// ListProducts returns every document in the products collection.
	ListProducts(ctx context.Context) ([]model.Item, error)
}

// itemService is a concrete implementation of ItemService.
type itemService struct {
	store   storage.Storage
	repo    repository.ItemRepository
	baseURL string
	now     func() time.Time
}

// NewItemService constructs a new ItemService.
func NewItemService(store storage.Storage, repo repository.ItemRepository, baseURL string) ItemService {
	return &itemService{store: store, repo: repo, baseURL: baseURL, now: time.Now}
}

func (s *itemService) UploadSingle(ctx context.Context, up Upload, fields map[string]string) (*UploadResult, error) {
	return s.upload(ctx, model.CategoryProducts, []Upload{up}, fields)
}

func (s *itemService) UploadMultiple(ctx context.Context, rawCategory string, ups []Upload, fields map[string]string) (*UploadResult, error) {
	category, err := model.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}
	if len(ups) == 0 {
		return nil, ErrNoImages
	}
	if len(ups) > maxFilesPerUpload {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyFiles, maxFilesPerUpload)
	}
	return s.upload(ctx, category, ups, fields)
}

// upload validates and persists each file, then inserts the item document.
// If anything fails after files were written, the files written by this
// request are removed so a failed upload leaves no orphans behind.
func (s *itemService) upload(ctx context.Context, category model.Category, ups []Upload, fields map[string]string) (*UploadResult, error) {
	saved := make([]string, 0, len(ups))
	urls := make([]string, 0, len(ups))

	cleanup := func() {
		for _, name := range saved {
			_ = s.store.Delete(ctx, category, name)
		}
	}

	for _, up := range ups {
		if up.Reader == nil {
			cleanup()
			return nil, ErrReaderNil
		}
		if err := storage.ValidateImage(up.ContentType, up.Size); err != nil {
			cleanup()
			return nil, err
		}

		name := storage.Filename(up.Filename, s.now())
		err := s.store.Save(ctx, category, name, up.Reader, storage.SaveOptions{
			Size:        up.Size,
			ContentType: up.ContentType,
		})
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("save file: %w", err)
		}
		saved = append(saved, name)
		urls = append(urls, storage.PublicURL(s.baseURL, category, name))
	}

	doc := make(model.Item, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc["images"] = urls

	id, err := s.repo.Insert(ctx, category, doc)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return &UploadResult{InsertedID: id, Images: urls, Item: doc}, nil
}

func (s *itemService) DeleteItem(ctx context.Context, rawCategory, id string, images []string) (*DeleteResult, error) {
	category, err := model.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if id == "" {
		return nil, ErrIDRequired
	}

	for _, img := range images {
		name := storedName(img)
		if err := s.store.Delete(ctx, category, name); err != nil {
			return nil, &ImageDeleteError{Image: name, Err: err}
		}
	}

	n, err := s.repo.DeleteByID(ctx, category, id)
	if err != nil {
		return nil, fmt.Errorf("delete record: %w", err)
	}
	if n == 0 {
		return nil, ErrRecordNotFound
	}
	return &DeleteResult{DeletedCount: n}, nil
}

func (s *itemService) ListProducts(ctx context.Context) ([]model.Item, error) {
	return s.repo.FindAll(ctx, model.CategoryProducts)
}

// storedName accepts either a bare filename or the public URL handed out at
// upload time and returns the stored filename.
func storedName(img string) string {
	if u, err := url.Parse(img); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(img)
}
