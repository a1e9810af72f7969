package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes blobs under a root directory. The directory is expected
// to be served as static files at baseURL (the API mounts it at /uploads).
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (*LocalStore, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Driver() Driver { return DriverLocal }

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	return f.Close()
}

func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *LocalStore) Delete(ctx context.Context, keys []string) error {
	var firstErr error
	for _, key := range keys {
		if err := ValidateKey(key); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
