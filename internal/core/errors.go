package core

import (
	"errors"
	"fmt"
)

// ErrTooManyExports is returned when every export slot is busy and the
// wait timeout expires. Clients should retry after a short delay.
var ErrTooManyExports = errors.New("too many concurrent exports, please try again later")

// ErrMalformedRequest marks a request body that could not be decoded.
var ErrMalformedRequest = errors.New("malformed request body")

// ErrIdempotencyKeyReused is returned when an idempotency key that is already
// stored arrives with different field values. Nothing is written.
var ErrIdempotencyKeyReused = errors.New("idempotency key already used for a different submission")

// ErrRender marks a failure inside a report renderer.
var ErrRender = errors.New("render report")

// StorageError wraps a failure of the record store: the store is unreachable
// or rejected the read or write. It is never retried automatically.
type StorageError struct {
	Op  string // "insert submission", "list submissions", ...
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
