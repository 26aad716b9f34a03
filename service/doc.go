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

// Package service exposes a built taxonomy over HTTP.
//
// Routes:
//
//	GET /healthz              snapshot identity and cache statistics
//	GET /domains              the domain tree
//	GET /tables?filter=       tables whose name or description contains filter
//	GET /tables/{name}        one table with shared columns and relationships
//	GET /search?q=&limit=     ranked fuzzy search
//
// The served snapshot is immutable. Rebuilds produce a new snapshot that is
// swapped in atomically, so in-flight requests finish against the snapshot
// they started with. When watching is enabled, changes to the input file
// trigger a debounced rebuild that is retried with exponential backoff.
package service
