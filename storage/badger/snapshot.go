package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	return &SnapshotRepository{
		backend: backend,
	}, nil
}

// Close releases resources. The backend is owned by the caller.
func (r *SnapshotRepository) Close() error {
	return nil
}

// SaveSnapshot stores the snapshot, its header and the latest pointer in one
// transaction.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *core.Snapshot) (*core.Snapshot, error) {
	if snapshot == nil {
		return nil, storage.ErrSnapshotRequired
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	value, err := storage.MarshalSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	header, err := storage.MarshalSnapshotHeader(snapshot.Header())
	if err != nil {
		return nil, err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSnapshotKey(snapshot.Id), value); err != nil {
			return err
		}
		if err := tx.Set(makeHeaderKey(snapshot.Id), header); err != nil {
			return err
		}
		if err := tx.Set([]byte(latestKey), storage.MarshalID(snapshot.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("saved snapshot", "id", snapshot.Id, "source", snapshot.Source)
	return snapshot, nil
}

// GetSnapshot retrieves a snapshot by ID.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, id core.ID) (*core.Snapshot, error) {
	var snapshot *core.Snapshot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		snapshot, err = readSnapshot(tx, id)
		return err
	}, false)
	return snapshot, err
}

// LatestSnapshot follows the latest pointer.
func (r *SnapshotRepository) LatestSnapshot(ctx context.Context) (*core.Snapshot, error) {
	var snapshot *core.Snapshot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := readLatest(tx)
		if err != nil {
			return err
		}
		snapshot, err = readSnapshot(tx, id)
		return err
	}, false)
	return snapshot, err
}

// ListSnapshots returns every header, newest first. Ties are broken by ID.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context) ([]*core.SnapshotHeader, error) {
	var headers []*core.SnapshotHeader
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		headers, err = readHeaders(tx)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return headers, nil
}

// DeleteSnapshot removes the snapshot and its header, moving the latest
// pointer to the newest remaining snapshot when needed.
func (r *SnapshotRepository) DeleteSnapshot(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(makeHeaderKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(makeSnapshotKey(id)); err != nil {
			return err
		}
		if err := tx.Delete(makeHeaderKey(id)); err != nil {
			return err
		}

		latest, err := readLatest(tx)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err == nil && latest == id {
			// Reads within the transaction see the deletes above.
			remaining, err := readHeaders(tx)
			if err != nil {
				return err
			}
			if len(remaining) == 0 {
				err = tx.Delete([]byte(latestKey))
			} else {
				err = tx.Set([]byte(latestKey), storage.MarshalID(remaining[0].Id))
			}
			if err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

func readSnapshot(tx *badger.Txn, id core.ID) (*core.Snapshot, error) {
	item, err := tx.Get(makeSnapshotKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	var snapshot *core.Snapshot
	err = item.Value(func(val []byte) error {
		snapshot, err = storage.UnmarshalSnapshot(val)
		return err
	})
	return snapshot, err
}

func readLatest(tx *badger.Txn) (core.ID, error) {
	item, err := tx.Get([]byte(latestKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}
	var id core.ID
	err = item.Value(func(val []byte) error {
		id, err = storage.UnmarshalID(val)
		return err
	})
	return id, err
}

func readHeaders(tx *badger.Txn) ([]*core.SnapshotHeader, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(headerPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	headers := make([]*core.SnapshotHeader, 0)
	for iter.Rewind(); iter.Valid(); iter.Next() {
		err := iter.Item().Value(func(val []byte) error {
			h, err := storage.UnmarshalSnapshotHeader(val)
			if err != nil {
				return err
			}
			headers = append(headers, h)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.SortFunc(headers, func(a, b *core.SnapshotHeader) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		}
		return 0
	})
	return headers, nil
}
