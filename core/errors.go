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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMetadata indicates a metadata snapshot failed validation.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrEmptyTableName indicates a table has no name.
	ErrEmptyTableName = errors.New("table name cannot be empty")

	// ErrDuplicateTable indicates the same table name appears more than once.
	ErrDuplicateTable = errors.New("duplicate table name")

	// ErrInvalidRelationship indicates a Relationship failed validation.
	ErrInvalidRelationship = errors.New("invalid relationship")

	// ErrUnknownTable indicates a relationship endpoint is not a known table.
	ErrUnknownTable = errors.New("unknown table")

	// ErrInvalidRelationshipType indicates an unsupported relationship type.
	ErrInvalidRelationshipType = errors.New("invalid relationship type")

	// ErrInvalidNode indicates a sample value could not be decoded.
	ErrInvalidNode = errors.New("invalid sample node")
)
