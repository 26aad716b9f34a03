package badger

import (
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/storage"
)

// Key prefixes for different data types
const (
	snapshotPrefix = "snap:"
	headerPrefix   = "snaphdr:"
	latestKey      = "latest"
)

// makeKey appends the big-endian id to prefix so keys sort by ID.
func makeKey(prefix string, id core.ID) []byte {
	buf := make([]byte, 0, len(prefix)+8)
	buf = append(buf, prefix...)
	return append(buf, storage.MarshalID(id)...)
}

// makeSnapshotKey generates a key for a full snapshot by ID.
func makeSnapshotKey(id core.ID) []byte {
	return makeKey(snapshotPrefix, id)
}

// makeHeaderKey generates a key for a snapshot listing header by ID.
func makeHeaderKey(id core.ID) []byte {
	return makeKey(headerPrefix, id)
}
