package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps every failure reported by the database.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidDate is returned for date bounds that are not dd-mm-yyyy.
	ErrInvalidDate = errors.New("invalid date")
)

// persistErr classifies a database error under ErrPersistence.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// IsNotFound reports whether err is a not-found error.
// Uses errors.Is to handle wrapped errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPersistence reports whether err came from the database.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
