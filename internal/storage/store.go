// Package storage persists the resume record under a namespaced key in a file or PostgreSQL store.
package storage

import (
	"context"
	"errors"
)

// RecordKey is the namespaced key the resume record is stored under.
const RecordKey = "resume_builder.v1"

// ErrNotFound is returned by Store.Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a key/value store for serialized state.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
