package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for reading and writing catalog objects.
type ObjectStore interface {
	// Open returns the object stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the keys directly under the store root that end with suffix.
	List(ctx context.Context, suffix string) ([]string, error)
	// Put writes r under key and returns the number of bytes stored.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
}
