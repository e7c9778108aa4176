package services

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// StoredMedia locates an uploaded file. Path is served by GET /media/*;
// URL is the disk's public URL for the same object.
type StoredMedia struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// MediaService stores product images and videos on a storage disk.
type MediaService struct {
	disk storage.Disk
}

func NewMediaService(disk storage.Disk) *MediaService {
	return &MediaService{disk: disk}
}

// Store writes r under a fresh random key that keeps the extension of
// filename.
func (s *MediaService) Store(ctx context.Context, filename string, r io.Reader, contentType string) (StoredMedia, error) {
	key := uuid.NewString() + extension(filename)
	if err := s.disk.Put(ctx, key, r, contentType); err != nil {
		return StoredMedia{}, internal("store media", err)
	}
	return StoredMedia{Path: "/media/" + key, URL: s.disk.URL(key)}, nil
}

// Open returns the stored object for key. The caller closes it.
func (s *MediaService) Open(ctx context.Context, key string) (*storage.Object, error) {
	obj, err := s.disk.Open(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotExist), errors.Is(err, storage.ErrInvalidPath):
		return nil, ErrNotFound
	case err != nil:
		return nil, internal("open media", err)
	}
	return obj, nil
}

func extension(filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
