package service

import "errors"

var (
	// ErrSnapshotRequired is returned when a server is created without a snapshot.
	ErrSnapshotRequired = errors.New("snapshot required")

	// ErrNoRebuild is returned by Reload when no rebuild function is configured.
	ErrNoRebuild = errors.New("no rebuild function configured")

	// ErrInvalidMaxAttempts is returned when retry is configured with no attempts.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrInvalidOption is returned when a server option is out of range.
	ErrInvalidOption = errors.New("invalid server option")
)
