package taxonomy

import (
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferRelationships_FamilyPairs(t *testing.T) {
	r := rules.Default()
	r.Suffixes = []string{"clinic", "app"}
	r.Relationships = nil
	r.FamilyRelationships = []rules.FamilyPair{
		{Source: "session", Target: "prescription", Column: "prescription_id", Note: "Each session corresponds to a prescription."},
	}

	tables := suffixSet("session_app", "session_clinic", "prescription_app", "prescription_clinic")
	got := InferRelationships(tables, r, nil)

	require.Len(t, got, 2)
	assert.Equal(t, core.Relationship{
		Source:  "session_app",
		Target:  "prescription_app",
		Columns: []string{"prescription_id"},
		Type:    core.RelationshipForeignKey,
		Note:    "Each session corresponds to a prescription.",
	}, got[0])
	assert.Equal(t, "session_clinic", got[1].Source)
	assert.Equal(t, "prescription_clinic", got[1].Target)
}

func TestInferRelationships_DropsDanglingEndpoints(t *testing.T) {
	r := rules.Default()
	tables := suffixSet("patient", "session_app", "prescription_web", "recording_home", "session_home")

	got := InferRelationships(tables, r, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "recording_home", got[0].Source)
	assert.Equal(t, "session_home", got[0].Target)
	for _, rel := range got {
		assert.Contains(t, tables, rel.Source)
		assert.Contains(t, tables, rel.Target)
	}
}

func TestInferRelationships_DeclaredFirstAndDuplicatesKept(t *testing.T) {
	r := rules.Default()
	r.Relationships = []rules.RelationshipRule{
		{Source: "session_app", Target: "prescription_app", Columns: []string{"prescription_id"}, Type: "foreign_key", Note: "declared"},
	}
	tables := suffixSet("session_app", "prescription_app")

	got := InferRelationships(tables, r, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "declared", got[0].Note)
	assert.Equal(t, got[0].Source, got[1].Source)
	assert.Equal(t, got[0].Target, got[1].Target)
	assert.NotEqual(t, "declared", got[1].Note)
}
