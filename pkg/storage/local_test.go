package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/storage"
)

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.NewLocal(t.TempDir(), "http://127.0.0.1:3001/media/")
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, "media/abc.txt", strings.NewReader("hello"), "text/plain"))

	ok, err := disk.Exists(ctx, "media/abc.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	obj, err := disk.Open(ctx, "media/abc.txt")
	require.NoError(t, err)
	body, _ := io.ReadAll(obj)
	obj.Close()
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, int64(5), obj.Size)
	assert.True(t, strings.HasPrefix(obj.ContentType, "text/plain"))

	assert.Equal(t, "http://127.0.0.1:3001/media/media/abc.txt", disk.URL("media/abc.txt"))

	require.NoError(t, disk.Delete(ctx, "media/abc.txt"))
	require.NoError(t, disk.Delete(ctx, "media/abc.txt"))

	_, err = disk.Open(ctx, "media/abc.txt")
	assert.True(t, errors.Is(err, storage.ErrNotExist))
}

func TestLocalRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.NewLocal(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"../etc/passwd", "media/../../x", "", "/"} {
		err := disk.Put(ctx, key, strings.NewReader("x"), "")
		assert.ErrorIs(t, err, storage.ErrInvalidPath, key)
	}
}

func TestCleanKey(t *testing.T) {
	got, err := storage.CleanKey("/media//a\\b.png")
	require.NoError(t, err)
	assert.Equal(t, "media/a/b.png", got)
}
