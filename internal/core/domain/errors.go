package domain

import (
	"errors"
	"fmt"
)

// ErrWrongInput is returned when a roster update arrives without a photo.
var ErrWrongInput = errors.New("roster update expects a photo attachment")

// TransportError means a reply could not be delivered to the platform.
type TransportError struct {
	Op     string
	ChatID int64
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("telegram %s (chat %d): %v", e.Op, e.ChatID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FetchError covers non-success responses and empty or malformed payloads
// from a remote image source.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StorageError is a local roster read or write failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("roster %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrorKind classifies an error for logs and metrics labels.
func ErrorKind(err error) string {
	var (
		transportErr *TransportError
		fetchErr     *FetchError
		storageErr   *StorageError
	)
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrWrongInput):
		return "user_input"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &storageErr):
		return "storage"
	default:
		return "internal"
	}
}
