package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediaapi/internal/model"
	repoMocks "mediaapi/internal/repository/mocks"
	"mediaapi/internal/storage"
	storeMocks "mediaapi/internal/storage/mocks"
)

const testBaseURL = "http://localhost:8080"

// newServiceT wires mocks with a frozen clock so generated filenames are
// deterministic.
func newServiceT(ts int64) (*itemService, *storeMocks.MockStorage, *repoMocks.MockItemRepository) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockItemRepository)
	svc := &itemService{
		store:   mStore,
		repo:    mRepo,
		baseURL: testBaseURL,
		now:     func() time.Time { return time.UnixMilli(ts) },
	}
	return svc, mStore, mRepo
}

func upload(name, contentType, content string) Upload {
	return Upload{
		Reader:      strings.NewReader(content),
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
	}
}

func TestUploadSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(1700000000000)
		wantName := "1700000000000-photo.png"
		wantURL := testBaseURL + "/uploads/products/" + wantName

		mStore.On("Save", ctx, model.CategoryProducts, wantName, mock.Anything, storage.SaveOptions{
			Size:        int64(4),
			ContentType: "image/png",
		}).Return(nil)
		mRepo.On("Insert", ctx, model.CategoryProducts, mock.MatchedBy(func(doc model.Item) bool {
			imgs, ok := doc["images"].([]string)
			return ok && len(imgs) == 1 && imgs[0] == wantURL && doc["name"] == "lamp"
		})).Return("651234567890abcdef123456", nil)

		res, err := svc.UploadSingle(ctx, upload("photo.png", "image/png", "1234"), map[string]string{"name": "lamp"})

		require.NoError(t, err)
		assert.Equal(t, "651234567890abcdef123456", res.InsertedID)
		assert.Equal(t, []string{wantURL}, res.Images)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("unsupported content type writes nothing", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(1700000000000)

		_, err := svc.UploadSingle(ctx, upload("anim.gif", "image/gif", "1234"), nil)

		assert.ErrorIs(t, err, storage.ErrUnsupportedType)
		mStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized file rejected", func(t *testing.T) {
		svc, _, _ := newServiceT(1700000000000)

		up := Upload{Reader: strings.NewReader("x"), Filename: "big.png", ContentType: "image/png", Size: storage.MaxFileSize + 1}
		_, err := svc.UploadSingle(ctx, up, nil)

		assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	})

	t.Run("nil reader rejected", func(t *testing.T) {
		svc, _, _ := newServiceT(1700000000000)

		_, err := svc.UploadSingle(ctx, Upload{Filename: "a.png", ContentType: "image/png", Size: 1}, nil)

		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("insert failure removes the written file", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(1700000000000)
		wantName := "1700000000000-photo.png"

		mStore.On("Save", ctx, model.CategoryProducts, wantName, mock.Anything, mock.Anything).Return(nil)
		mRepo.On("Insert", ctx, model.CategoryProducts, mock.Anything).Return("", errors.New("db down"))
		mStore.On("Delete", ctx, model.CategoryProducts, wantName).Return(nil)

		_, err := svc.UploadSingle(ctx, upload("photo.png", "image/png", "1234"), nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "insert item")
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})
}

func TestUploadMultiple(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves upload order", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(1700000000000)

		mStore.On("Save", ctx, model.CategoryQNA, "1700000000000-first.png", mock.Anything, mock.Anything).Return(nil)
		mStore.On("Save", ctx, model.CategoryQNA, "1700000000000-second.jpg", mock.Anything, mock.Anything).Return(nil)
		mRepo.On("Insert", ctx, model.CategoryQNA, mock.Anything).Return("id1", nil)

		res, err := svc.UploadMultiple(ctx, "qna",
			[]Upload{
				upload("first.png", "image/png", "aa"),
				upload("second.jpg", "image/jpeg", "bb"),
			}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			testBaseURL + "/uploads/qna/1700000000000-first.png",
			testBaseURL + "/uploads/qna/1700000000000-second.jpg",
		}, res.Images)
		mStore.AssertExpectations(t)
	})

	t.Run("unknown category fails before any write", func(t *testing.T) {
		svc, mStore, _ := newServiceT(1700000000000)

		_, err := svc.UploadMultiple(ctx, "videos", []Upload{upload("a.png", "image/png", "x")}, nil)

		assert.ErrorIs(t, err, model.ErrUnknownCategory)
		mStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero files rejected", func(t *testing.T) {
		svc, _, _ := newServiceT(1700000000000)

		_, err := svc.UploadMultiple(ctx, "products", nil, nil)

		assert.ErrorIs(t, err, ErrNoImages)
	})

	t.Run("more than ten files rejected", func(t *testing.T) {
		svc, _, _ := newServiceT(1700000000000)

		ups := make([]Upload, 11)
		for i := range ups {
			ups[i] = upload(fmt.Sprintf("f%d.png", i), "image/png", "x")
		}
		_, err := svc.UploadMultiple(ctx, "products", ups, nil)

		assert.ErrorIs(t, err, ErrTooManyFiles)
	})

	t.Run("mid-batch save failure removes earlier files", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(1700000000000)

		mStore.On("Save", ctx, model.CategoryArticles, "1700000000000-first.png", mock.Anything, mock.Anything).Return(nil)
		mStore.On("Save", ctx, model.CategoryArticles, "1700000000000-second.jpg", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		mStore.On("Delete", ctx, model.CategoryArticles, "1700000000000-first.png").Return(nil)

		_, err := svc.UploadMultiple(ctx, "articles",
			[]Upload{
				upload("first.png", "image/png", "aa"),
				upload("second.jpg", "image/jpeg", "bb"),
			}, nil)

		assert.Error(t, err)
		mStore.AssertExpectations(t)
		mRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	const id = "651234567890abcdef123456"

	t.Run("happy path", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(0)

		mStore.On("Delete", ctx, model.CategoryProducts, "1-a.png").Return(nil)
		mRepo.On("DeleteByID", ctx, model.CategoryProducts, id).Return(int64(1), nil)

		res, err := svc.DeleteItem(ctx, "products", id, []string{"1-a.png"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("accepts public URLs", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(0)

		mStore.On("Delete", ctx, model.CategoryQNA, "1-b.jpg").Return(nil)
		mRepo.On("DeleteByID", ctx, model.CategoryQNA, id).Return(int64(1), nil)

		_, err := svc.DeleteItem(ctx, "qna", id, []string{testBaseURL + "/uploads/qna/1-b.jpg"})

		require.NoError(t, err)
		mStore.AssertExpectations(t)
	})

	t.Run("empty images rejected before touching the database", func(t *testing.T) {
		svc, _, mRepo := newServiceT(0)

		_, err := svc.DeleteItem(ctx, "products", id, nil)

		assert.ErrorIs(t, err, ErrNoImages)
		mRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		svc, _, _ := newServiceT(0)

		_, err := svc.DeleteItem(ctx, "products", "", []string{"1-a.png"})

		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc, _, _ := newServiceT(0)

		_, err := svc.DeleteItem(ctx, "videos", id, []string{"1-a.png"})

		assert.ErrorIs(t, err, model.ErrUnknownCategory)
	})

	t.Run("file deletion failure aborts and names the image", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(0)

		mStore.On("Delete", ctx, model.CategoryProducts, "1-a.png").Return(nil)
		mStore.On("Delete", ctx, model.CategoryProducts, "1-b.png").Return(storage.ErrNotFound)

		_, err := svc.DeleteItem(ctx, "products", id, []string{"1-a.png", "1-b.png", "1-c.png"})

		var ide *ImageDeleteError
		require.ErrorAs(t, err, &ide)
		assert.Equal(t, "1-b.png", ide.Image)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		// the record must not be touched after a file failure
		mRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Delete", ctx, model.CategoryProducts, "1-c.png")
	})

	t.Run("zero deletions is not found", func(t *testing.T) {
		svc, mStore, mRepo := newServiceT(0)

		mStore.On("Delete", ctx, model.CategoryProducts, "1-a.png").Return(nil)
		mRepo.On("DeleteByID", ctx, model.CategoryProducts, id).Return(int64(0), nil)

		_, err := svc.DeleteItem(ctx, "products", id, []string{"1-a.png"})

		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns repository result", func(t *testing.T) {
		svc, _, mRepo := newServiceT(0)

		want := []model.Item{{"name": "lamp"}, {"name": "desk"}}
		mRepo.On("FindAll", ctx, model.CategoryProducts).Return(want, nil)

		got, err := svc.ListProducts(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		svc, _, mRepo := newServiceT(0)

		mRepo.On("FindAll", ctx, model.CategoryProducts).Return(nil, errors.New("db down"))

		_, err := svc.ListProducts(ctx)

		assert.Error(t, err)
	})
}

func TestStoredName(t *testing.T) {
	assert.Equal(t, "1-a.png", storedName("1-a.png"))
	assert.Equal(t, "1-a.png", storedName("http://host/uploads/products/1-a.png"))
	assert.Equal(t, "1-a.png", storedName("/uploads/products/1-a.png"))
}
