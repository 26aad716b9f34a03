package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, "1", r.Version)
	assert.Equal(t, "1.0", r.TaxonomyVersion)
	assert.ElementsMatch(t, []string{"app", "clinic", "home", "icu", "plus", "web"}, r.Suffixes)
	assert.Equal(t, "Miscellaneous", r.MiscellaneousGroup)
	assert.Equal(t, "Other", r.OtherSubgroup)
	assert.Equal(t, "AISN", r.ClinicalTrialGroup)
	assert.Len(t, r.Goals, 3)
	assert.Len(t, r.Domains, 8)
	assert.Equal(t, "RGS Core", r.Domains[0].Name)
	assert.Equal(t, "Miscellaneous", r.Domains[len(r.Domains)-1].Name)
	assert.Len(t, r.Relationships, 2)
	assert.Len(t, r.FamilyRelationships, 4)
	assert.Equal(t, []string{"Prescriptions", "RecSys"}, r.TableGroupSet["prescription_change_reason"])
	assert.Equal(t, []string{"AISN"}, r.TableGroupAdd["clinical_trials"])
	assert.Equal(t, "Reference entities: protocols, platforms, software, versions.", r.GroupDescriptions["RGS Housekeeping"])
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.GroupDescriptions["Patient"] = "changed"
	a.Suffixes = nil

	b := Default()
	assert.NotEqual(t, "changed", b.GroupDescriptions["Patient"])
	assert.NotEmpty(t, b.Suffixes)
}

func TestSubgroupFor(t *testing.T) {
	r := Default()

	tests := []struct {
		table string
		want  string
	}{
		{"metric_app", "Metrics and Monitoring"},
		{"clinical_data", "Clinical and Data Sources"},
		{"station", "Device and Telemetry"},
		{"tree", "Codes and Reference"},
		{"prescription_change_reason", "Prescription Support"},
		{"totally_unknown", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, r.SubgroupFor(tt.table))
		})
	}

	assert.Equal(t, "Miscellaneous tables that do not fit other subgroups.", r.SubgroupDescription("Other"))
	assert.Empty(t, r.SubgroupDescription("Nope"))
}

func TestSubgroupFor_FirstListWins(t *testing.T) {
	r := Default()
	r.MiscSubgroups = []SubgroupRule{
		{Name: "First", Tables: []string{"shared"}},
		{Name: "Second", Tables: []string{"shared"}},
	}
	assert.Equal(t, "First", r.SubgroupFor("shared"))
}

func TestDomainLookups(t *testing.T) {
	r := Default()
	domains := r.DomainOf()

	assert.Equal(t, "RGS Core", domains["sessions"])
	assert.Equal(t, "Clinical Trial", domains["AISN"])
	assert.Equal(t, "Predictive Analytics", domains["SaddlePoint"])
	assert.Equal(t, "Miscellaneous", r.MiscellaneousDomain())

	assert.Equal(t, []string{"app", "clinic", "home", "icu", "plus", "web"}, r.SortedSuffixes())
	assert.Contains(t, r.GenericColumnSet(), "deleted_at")
}

func TestDeclaredRelationships(t *testing.T) {
	rels := Default().DeclaredRelationships()
	require.Len(t, rels, 2)
	assert.Equal(t, "patient", rels[0].Source)
	assert.Equal(t, "hospital", rels[0].Target)
	assert.EqualValues(t, "foreign_key", rels[0].Type)
	assert.EqualValues(t, "reference", rels[1].Type)
}

func TestParse(t *testing.T) {
	t.Run("merges maps and replaces lists", func(t *testing.T) {
		r, err := Parse(strings.NewReader(`
version: "2"
suffixes: [app, web]
group_descriptions:
  Patient: Custom patient text.
  NewGroup: Brand new.
`))
		require.NoError(t, err)

		assert.Equal(t, "2", r.Version)
		assert.Equal(t, []string{"app", "web"}, r.Suffixes)
		assert.Equal(t, "Custom patient text.", r.GroupDescriptions["Patient"])
		assert.Equal(t, "Brand new.", r.GroupDescriptions["NewGroup"])
		assert.Equal(t, "Prescriptions across application contexts.", r.GroupDescriptions["Prescriptions"])
		assert.Len(t, r.Domains, 8)
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		r, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, Default(), r)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse(strings.NewReader("no_such_field: 1\n"))
		assert.ErrorIs(t, err, ErrInvalidRules)
	})

	t.Run("group in two domains", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
domains:
  - name: A
    groups: [Patient]
  - name: B
    groups: [Patient]
`))
		assert.ErrorIs(t, err, ErrInvalidRules)
	})

	t.Run("bad relationship type", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
relationships:
  - source: a
    target: b
    type: many_to_many
`))
		assert.ErrorIs(t, err, ErrInvalidRules)
	})

	t.Run("empty suffixes", func(t *testing.T) {
		_, err := Parse(strings.NewReader("suffixes: []\n"))
		assert.ErrorIs(t, err, ErrInvalidRules)
	})

	t.Run("incomplete family pair", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
family_relationships:
  - source: session
    target: prescription
`))
		assert.ErrorIs(t, err, ErrInvalidRules)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		r, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), r)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("clinical_trial_group: Trial\n"), 0o644))

		r, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Trial", r.ClinicalTrialGroup)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrRulesUnreadable)
	})
}
