package storage

import (
	"testing"
	"time"

	"github.com/poiesic/taxonomist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.Len(t, data, 8)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {1, 2, 3}, make([]byte, 9)} {
		_, err := UnmarshalID(data)
		assert.ErrorIs(t, err, ErrTruncatedData)
	}
}

func TestMarshalSnapshot(t *testing.T) {
	created := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	snapshot := &core.Snapshot{
		Id:           core.IDFromContent("x"),
		Source:       "metadata.json",
		RulesVersion: "1",
		CreatedAt:    created,
		Taxonomy: &core.Taxonomy{
			Version: "1.0",
			Goals:   []string{"Orient engineers"},
			Domains: []core.Domain{{
				Name:        "Core Entities",
				Description: "Patients and hospitals",
				Groups: []core.DomainGroup{{
					Name:          "Patient",
					Tables:        []core.TableView{{Table: "patient", Label: "Patient"}},
					TableFamilies: []core.FamilyView{{Family: "session", Label: "Session", Variants: []string{"session_app", "session_web"}}},
				}},
			}},
			GroupHierarchy: map[string]core.Group{
				"Patient": {Description: "Patient data", ParentGroups: []string{"Core"}, Tables: []string{"patient"}},
			},
			Relationships: []core.Relationship{
				{Source: "session_app", Target: "prescription_app", Columns: []string{"prescription_id"}, Type: core.RelationshipForeignKey},
			},
		},
	}

	data, err := MarshalSnapshot(snapshot)
	require.NoError(t, err)

	got, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Id, got.Id)
	assert.True(t, created.Equal(got.CreatedAt))
	require.NotNil(t, got.Taxonomy)
	assert.Equal(t, snapshot.Taxonomy.Goals, got.Taxonomy.Goals)
	assert.Equal(t, snapshot.Taxonomy.GroupHierarchy, got.Taxonomy.GroupHierarchy)
	assert.Equal(t, snapshot.Taxonomy.Relationships, got.Taxonomy.Relationships)
	require.Len(t, got.Taxonomy.Domains, 1)
	assert.Equal(t, snapshot.Taxonomy.Domains[0].Groups[0].TableFamilies, got.Taxonomy.Domains[0].Groups[0].TableFamilies)
}

func TestUnmarshalSnapshot_Invalid(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte{0xc1})
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalSnapshotHeader(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalSnapshotHeader(t *testing.T) {
	h := &core.SnapshotHeader{Id: 7, Source: "m.json", RulesVersion: "1", Tables: 12, CreatedAt: time.Unix(100, 0).UTC()}
	data, err := MarshalSnapshotHeader(h)
	require.NoError(t, err)

	got, err := UnmarshalSnapshotHeader(data)
	require.NoError(t, err)
	assert.Equal(t, h.Id, got.Id)
	assert.Equal(t, 12, got.Tables)
	assert.True(t, h.CreatedAt.Equal(got.CreatedAt))
}
