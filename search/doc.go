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


// Package search provides fuzzy free-text search over a built taxonomy.
//
// The Searcher scores every table of a taxonomy against a query using the
// maximum of three textual signals:
//   - Sequence similarity of the normalized texts
//   - Sequence similarity with all separators removed
//   - Word overlap between query and text
//
// A table is scored on its name, description and group names, and on each of
// its columns. Matching tables are ranked by score and capped. No model or
// index beyond the taxonomy itself is involved, so searches are pure
// functions of their inputs and may run concurrently.
package search
