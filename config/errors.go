package config

import "errors"

var (
	// ErrConfigUnreadable is returned when a config file cannot be loaded.
	ErrConfigUnreadable = errors.New("config unreadable")

	// ErrInvalidConfig is returned when a setting is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)
