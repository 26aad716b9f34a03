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


package core

import "fmt"

// ValidateMetadata validates a metadata snapshot according to domain rules.
//
// Validation rules:
//   - Every table must have a non-empty name
//   - Table names must be unique
//
// NOT validated (handled best-effort by the build):
//   - Column encodings (malformed strings parse to partial columns)
//   - Group names (unknown groups are synthesized)
func ValidateMetadata(m *Metadata) error {
	if m == nil {
		return fmt.Errorf("%w: metadata is nil", ErrInvalidMetadata)
	}

	seen := make(map[string]struct{}, len(m.Tables))
	for i, t := range m.Tables {
		if t.Name == "" {
			return fmt.Errorf("%w: table %d: %w", ErrInvalidMetadata, i, ErrEmptyTableName)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: %w: %q", ErrInvalidMetadata, ErrDuplicateTable, t.Name)
		}
		seen[t.Name] = struct{}{}
	}

	return nil
}

// ValidateRelationship validates a Relationship against the set of known tables.
//
// Validation rules:
//   - Source and Target must be known tables
//   - Type must be foreign_key or reference
func ValidateRelationship(rel *Relationship, tables map[string]struct{}) error {
	if rel == nil {
		return fmt.Errorf("%w: relationship is nil", ErrInvalidRelationship)
	}

	if err := ValidateRelationshipType(rel.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelationship, err)
	}

	if _, ok := tables[rel.Source]; !ok {
		return fmt.Errorf("%w: source %q: %w", ErrInvalidRelationship, rel.Source, ErrUnknownTable)
	}
	if _, ok := tables[rel.Target]; !ok {
		return fmt.Errorf("%w: target %q: %w", ErrInvalidRelationship, rel.Target, ErrUnknownTable)
	}

	return nil
}

// ValidateRelationshipType validates that a RelationshipType has a valid value.
func ValidateRelationshipType(t RelationshipType) error {
	if t != RelationshipForeignKey && t != RelationshipReference {
		return fmt.Errorf("%w: value %q", ErrInvalidRelationshipType, t)
	}
	return nil
}
