package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaapi/internal/model"
)

func newDiskT(t *testing.T) (Storage, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewDisk(root)
	require.NoError(t, err)
	return store, root
}

func TestDiskSave(t *testing.T) {
	ctx := context.Background()
	store, root := newDiskT(t)

	content := "fake image bytes"
	err := store.Save(ctx, model.CategoryProducts, "1-pic.png", strings.NewReader(content), SaveOptions{
		Size:        int64(len(content)),
		ContentType: "image/png",
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "products", "1-pic.png"))
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestDiskSaveCreatesCategoryDir(t *testing.T) {
	ctx := context.Background()
	store, root := newDiskT(t)

	err := store.Save(ctx, model.CategoryQNA, "1-a.jpg", strings.NewReader("x"), SaveOptions{Size: 1})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "qna"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiskOpen(t *testing.T) {
	ctx := context.Background()
	store, _ := newDiskT(t)

	require.NoError(t, store.Save(ctx, model.CategoryArticles, "1-b.jpg", strings.NewReader("hello"), SaveOptions{Size: 5}))

	rc, err := store.Open(ctx, model.CategoryArticles, "1-b.jpg")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestDiskOpenMissing(t *testing.T) {
	store, _ := newDiskT(t)

	_, err := store.Open(context.Background(), model.CategoryProducts, "nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskDelete(t *testing.T) {
	ctx := context.Background()
	store, root := newDiskT(t)

	require.NoError(t, store.Save(ctx, model.CategoryProducts, "1-c.png", strings.NewReader("x"), SaveOptions{Size: 1}))
	require.NoError(t, store.Delete(ctx, model.CategoryProducts, "1-c.png"))

	_, err := os.Stat(filepath.Join(root, "products", "1-c.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskDeleteMissing(t *testing.T) {
	store, _ := newDiskT(t)

	err := store.Delete(context.Background(), model.CategoryProducts, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskFilenameCannotEscapeCategory(t *testing.T) {
	ctx := context.Background()
	store, root := newDiskT(t)

	err := store.Save(ctx, model.CategoryProducts, "../../evil.png", strings.NewReader("x"), SaveOptions{Size: 1})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(root, "products", "evil.png"))
	assert.NoError(t, statErr)
}

func TestNewDiskRequiresRoot(t *testing.T) {
	_, err := NewDisk("")
	assert.Error(t, err)
}
