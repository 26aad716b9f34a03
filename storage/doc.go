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

// Package storage provides the persistence layer for built taxonomies.
//
// A snapshot is one build of the taxonomy together with where it came from
// and which rules produced it. Repositories keep every saved snapshot and
// track the most recent one, so readers can serve the last good build
// without rebuilding from source.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the concrete repository,
// which satisfies SnapshotRepository:
//
//	repo, err := badger.NewSnapshotRepository(backend)
//
// Consumers should depend on the interface so tests can substitute an
// in-memory repository.
//
// # Usage
//
// Open a repository on disk:
//
//	backend, err := badger.OpenBackend("/path/to/db", false, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	repo, _ := badger.NewSnapshotRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Encoding
//
// Snapshots are encoded with MessagePack using the same field names as the
// published JSON document.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
