// Package storage persists the resume record under a namespaced key in a file or PostgreSQL store.
package storage

import (
	"context"
	"errors"

	"github.com/jonathan/resume-builder/internal/types"
)

// LoadRecord reads and decodes the record under key.
// A missing key yields defaults with no error. A corrupt value is deleted from the store and
// defaults are returned together with the *CorruptError so the caller can tell the user.
// Any other error is a read failure and no record is returned.
func LoadRecord(ctx context.Context, s Store, key string) (*Decoded, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Decoded{Record: types.NewRecord()}, nil
		}
		return nil, err
	}

	decoded, err := Decode(raw)
	if err != nil {
		var corrupt *CorruptError
		if errors.As(err, &corrupt) {
			corrupt.Key = key
			_ = s.Delete(ctx, key)
			return &Decoded{Record: types.NewRecord()}, corrupt
		}
		return nil, err
	}
	return decoded, nil
}

// SaveRecord encodes rec and writes it under key. Failures are returned as *WriteError.
func SaveRecord(ctx context.Context, s Store, key string, rec *types.ResumeRecord) error {
	data, err := Encode(rec)
	if err != nil {
		return &WriteError{Key: key, Cause: err}
	}
	if err := s.Put(ctx, key, data); err != nil {
		return &WriteError{Key: key, Cause: err}
	}
	return nil
}

// ClearRecord removes the record under key.
func ClearRecord(ctx context.Context, s Store, key string) error {
	if err := s.Delete(ctx, key); err != nil {
		return &WriteError{Key: key, Cause: err}
	}
	return nil
}
