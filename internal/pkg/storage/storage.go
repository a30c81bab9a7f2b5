package storage

import (
	"context"
	"io"
)

// Storage is the minimal object store a mirrored backup writes into.
type Storage interface {
	// Put stores an object under key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// MakeFolder creates a folder. existed is true when it was already there.
	MakeFolder(ctx context.Context, folder string) (existed bool, err error)

	// GetURL returns the URL for a stored object.
	GetURL(key string) string
}
