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


// Package taxonomy builds a browsable taxonomy from flat table metadata.
//
// A build runs these stages over an immutable metadata snapshot:
//   - Family resolution: tables that differ only by a deployment-context
//     suffix (session_app, session_clinic) are grouped under a base name
//   - Group assembly: per-table overrides, group normalization and the
//     Miscellaneous catch-all with its subgroups
//   - Domain assembly: the fixed domain to group mapping rendered with
//     families and standalone tables
//   - Relationship inference: declared relationships plus relationships
//     generated across family variants
//   - Table index: per-table lookup records consumed by search
//
// Build is a pure function of its inputs. The resulting core.Taxonomy is
// never mutated afterwards and may be shared between goroutines.
package taxonomy
