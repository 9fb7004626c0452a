package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotExist    = errors.New("object does not exist")
	ErrInvalidPath = errors.New("invalid object path")
)

// Storage holds uploaded objects (boat photos, catch pictures) by relative path.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	// Get returns ErrNotExist when nothing is stored under path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete is a no-op for missing objects.
	Delete(ctx context.Context, path string) error
}
