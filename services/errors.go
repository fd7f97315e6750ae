package services

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable marks a failed read or write against the catalog or
	// conversation store. Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEmptyMessage is returned for chat messages that are blank after trimming.
	ErrEmptyMessage = errors.New("Message cannot be empty")

	// ErrUnauthenticated is returned when an operation needs a caller identity.
	ErrUnauthenticated = errors.New("authentication required")
)

func storeUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
