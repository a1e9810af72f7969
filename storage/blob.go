// Package storage holds uploaded images behind a small blob-store interface
// with local-directory, S3-compatible, and in-memory drivers.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Driver string

const (
	DriverLocal  Driver = "local"
	DriverS3     Driver = "s3"
	DriverMemory Driver = "memory"
)

// Store is the blob-store surface the application depends on. Keys are opaque
// slash-separated paths; PublicURL must be cheap because it is recomputed on
// every listing.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	PublicURL(key string) string
	Delete(ctx context.Context, keys []string) error
}

// NewKey builds a fresh object key under prefix, keeping the original file
// extension so content type can be inferred by the serving side.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}

// ValidateKey rejects keys that could escape the store's namespace.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty storage key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
