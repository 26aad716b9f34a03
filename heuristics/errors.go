package heuristics

import "errors"

// ErrMetadataRequired is returned when suggestions are requested without metadata.
var ErrMetadataRequired = errors.New("metadata required")
