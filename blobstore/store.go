package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when an object does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is a remote or local object store used as a backup target. Objects
// are small opaque units addressed by name; writes replace any existing
// object with the same name.
type Store interface {
	// Put writes an object, replacing any existing object with the same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads an object in full. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes an object. Deleting an absent object is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all objects with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
