// Package storage persists the resume record under a namespaced key in a file or PostgreSQL store.
package storage

import "fmt"

// CorruptError reports a stored value that cannot be used: unparseable, wrong version or wrong shape.
type CorruptError struct {
	Key     string
	Message string
	Cause   error
}

func (e *CorruptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt data under %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("corrupt data under %s: %s", e.Key, e.Message)
}

func (e *CorruptError) Unwrap() error {
	return e.Cause
}

// WriteError reports a failed persistence write. The in-memory record stays authoritative.
type WriteError struct {
	Key   string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Key, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
