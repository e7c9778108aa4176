package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

func TestMediaStoreAndOpen(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir(), "http://cdn.test/media")
	require.NoError(t, err)
	svc := services.NewMediaService(disk)
	ctx := context.Background()

	stored, err := svc.Store(ctx, "Clip.MP4", strings.NewReader("frames"), "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Path, "/media/"))
	assert.True(t, strings.HasSuffix(stored.Path, ".mp4"))

	key := strings.TrimPrefix(stored.Path, "/media/")
	assert.Equal(t, "http://cdn.test/media/"+key, stored.URL)

	obj, err := svc.Open(ctx, key)
	require.NoError(t, err)
	defer obj.Close()
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "frames", string(body))

	_, err = svc.Open(ctx, "missing.jpg")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.Open(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMediaDropsUnsafeExtensions(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir(), "")
	require.NoError(t, err)
	stored, err := services.NewMediaService(disk).Store(context.Background(), "evil.php%00", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.NotContains(t, stored.Path, ".")
}
