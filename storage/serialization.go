// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/poiesic/taxonomist/core"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalID serializes an ID to 8 big-endian bytes, so IDs sort as keys.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: id needs 8 bytes, got %d", ErrTruncatedData, len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// encode uses the json field names so stored snapshots read like the
// published taxonomy document.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}

// MarshalSnapshot serializes a Snapshot to bytes.
func MarshalSnapshot(snapshot *core.Snapshot) ([]byte, error) {
	return encode(snapshot)
}

// UnmarshalSnapshot deserializes a Snapshot from bytes.
func UnmarshalSnapshot(data []byte) (*core.Snapshot, error) {
	var s core.Snapshot
	if err := decode(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarshalSnapshotHeader serializes a SnapshotHeader to bytes.
func MarshalSnapshotHeader(header *core.SnapshotHeader) ([]byte, error) {
	return encode(header)
}

// UnmarshalSnapshotHeader deserializes a SnapshotHeader from bytes.
func UnmarshalSnapshotHeader(data []byte) (*core.SnapshotHeader, error) {
	var h core.SnapshotHeader
	if err := decode(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
