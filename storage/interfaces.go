package storage

import (
	"context"

	"github.com/poiesic/taxonomist/core"
)

// SnapshotRepository stores built taxonomies.
// Implementations must be thread-safe and support concurrent access.
type SnapshotRepository interface {
	// SaveSnapshot stores a snapshot and makes it the latest one.
	// Sets CreatedAt if not already set. Saving an existing ID replaces it.
	// Returns the stored snapshot.
	SaveSnapshot(ctx context.Context, snapshot *core.Snapshot) (*core.Snapshot, error)

	// GetSnapshot retrieves a snapshot by ID.
	// Returns ErrNotFound if the snapshot doesn't exist.
	GetSnapshot(ctx context.Context, id core.ID) (*core.Snapshot, error)

	// LatestSnapshot retrieves the most recently saved snapshot.
	// Returns ErrNotFound if nothing has been saved.
	LatestSnapshot(ctx context.Context) (*core.Snapshot, error)

	// ListSnapshots returns the headers of all stored snapshots, newest first.
	ListSnapshots(ctx context.Context) ([]*core.SnapshotHeader, error)

	// DeleteSnapshot removes a snapshot. When it was the latest one, the
	// newest remaining snapshot becomes latest.
	// Returns ErrNotFound if the snapshot doesn't exist.
	DeleteSnapshot(ctx context.Context, id core.ID) error

	// Close releases resources held by the repository.
	Close() error
}
