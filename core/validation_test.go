package core

import (
	"errors"
	"testing"
)

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata *Metadata
		wantErr  error
	}{
		{
			name:     "valid metadata",
			metadata: &Metadata{Tables: []TableMetadata{{Name: "patient"}, {Name: "hospital"}}},
			wantErr:  nil,
		},
		{
			name:     "no tables",
			metadata: &Metadata{},
			wantErr:  nil,
		},
		{
			name:     "nil metadata",
			metadata: nil,
			wantErr:  ErrInvalidMetadata,
		},
		{
			name:     "empty table name",
			metadata: &Metadata{Tables: []TableMetadata{{Name: "patient"}, {Name: ""}}},
			wantErr:  ErrEmptyTableName,
		},
		{
			name:     "duplicate table name",
			metadata: &Metadata{Tables: []TableMetadata{{Name: "patient"}, {Name: "patient"}}},
			wantErr:  ErrDuplicateTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadata(tt.metadata)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMetadata() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMetadata() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMetadata) {
				t.Errorf("ValidateMetadata() error should wrap ErrInvalidMetadata, got %v", err)
			}
		})
	}
}

func TestValidateRelationship(t *testing.T) {
	tables := map[string]struct{}{"patient": {}, "hospital": {}}

	tests := []struct {
		name    string
		rel     *Relationship
		wantErr error
	}{
		{
			name:    "valid foreign key",
			rel:     &Relationship{Source: "patient", Target: "hospital", Type: RelationshipForeignKey},
			wantErr: nil,
		},
		{
			name:    "valid reference",
			rel:     &Relationship{Source: "hospital", Target: "patient", Type: RelationshipReference},
			wantErr: nil,
		},
		{
			name:    "nil relationship",
			rel:     nil,
			wantErr: ErrInvalidRelationship,
		},
		{
			name:    "unknown source",
			rel:     &Relationship{Source: "clinic", Target: "hospital", Type: RelationshipForeignKey},
			wantErr: ErrUnknownTable,
		},
		{
			name:    "unknown target",
			rel:     &Relationship{Source: "patient", Target: "clinic", Type: RelationshipForeignKey},
			wantErr: ErrUnknownTable,
		},
		{
			name:    "bad type",
			rel:     &Relationship{Source: "patient", Target: "hospital", Type: "many_to_many"},
			wantErr: ErrInvalidRelationshipType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelationship(tt.rel, tables)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRelationship() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRelationship() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
