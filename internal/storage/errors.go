package storage

import "errors"

var (
	// ErrNotFound is returned when a crate or token symbol does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a crate whose ID is taken.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned for empty IDs, symbols or mints.
	ErrInvalidInput = errors.New("invalid input")
)
