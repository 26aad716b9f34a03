package ingestion

import "errors"

var (
	// ErrInputRequired is returned when no input path is given.
	ErrInputRequired = errors.New("input path required")

	// ErrInputUnreadable is returned when the input cannot be opened or read.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrInvalidInput is returned when the input is not a valid metadata snapshot.
	ErrInvalidInput = errors.New("invalid input")
)
