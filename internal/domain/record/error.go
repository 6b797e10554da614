package record

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// ValidationError reports bad or missing required input. The message is
// safe to surface to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the underlying store during a read or
// write. The wrapped error is for server-side logging only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
