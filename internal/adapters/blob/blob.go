// Package blob stores uploaded and generated documents.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when no object exists under a key.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidKey is returned for empty keys or keys escaping the store.
	ErrInvalidKey = errors.New("invalid blob key")
)

// Storage areas.
const (
	AreaUploads = "uploads"
	AreaResumes = "resumes"
)

// Store keeps documents under slash separated keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Key builds the key of name inside area. Only the base name is kept.
func Key(area, name string) string {
	return area + "/" + path.Base(strings.ReplaceAll(name, "\\", "/"))
}

func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
