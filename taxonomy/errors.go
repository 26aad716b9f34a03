package taxonomy

import "errors"

var (
	// ErrMetadataRequired is returned when Build is called without metadata.
	ErrMetadataRequired = errors.New("metadata required")

	// ErrRulesRequired is returned when a nil rule set is supplied.
	ErrRulesRequired = errors.New("rules required")

	// ErrWriteArtifacts is returned when the taxonomy outputs cannot be written.
	ErrWriteArtifacts = errors.New("failed to write taxonomy artifacts")

	// ErrUnknownTable is returned by lookups for a table missing from the index.
	ErrUnknownTable = errors.New("unknown table")
)
