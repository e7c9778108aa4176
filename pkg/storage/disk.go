// Package storage is the filesystem abstraction behind media uploads.
//
// Two drivers are available:
//   - "local" local filesystem (default)
//   - "s3"    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// The driver is chosen by STORAGE_DISK:
//
//	disk, err := storage.FromConfig(ctx)
//	err = disk.Put(ctx, "media/2f1c.jpg", file, "image/jpeg")
//	url := disk.URL("media/2f1c.jpg")
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/shashiranjanraj/catalog/config"
)

// ErrNotExist is returned when the requested object is absent.
var ErrNotExist = errors.New("storage: object does not exist")

// ErrInvalidPath is returned for empty keys or keys escaping the disk root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Object is an open stored file. Callers must close it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// Disk is the driver interface every backend implements.
type Disk interface {
	// Put writes r to key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error

	// Open returns a reader for key, or ErrNotExist.
	Open(ctx context.Context, key string) (*Object, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}

// FromConfig builds the disk named by STORAGE_DISK.
func FromConfig(ctx context.Context) (Disk, error) {
	switch name := config.StorageDefault(); name {
	case "local", "":
		return NewLocal(config.StorageLocalRoot(), config.StorageURL())
	case "s3":
		return NewS3(ctx, S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q", name)
	}
}

// CleanKey normalises key to a slash-separated relative path and rejects
// anything that would escape the disk root.
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	if key == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := strings.TrimLeft(path.Clean("/"+key), "/")
	if cleaned == "" {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
