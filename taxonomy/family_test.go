package taxonomy

import (
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/stretchr/testify/assert"
)

func suffixSet(s ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for _, x := range s {
		out[x] = struct{}{}
	}
	return out
}

func TestBaseName(t *testing.T) {
	suffixes := suffixSet("app", "clinic", "plus")

	tests := []struct {
		table    string
		wantBase string
		wantOK   bool
	}{
		{"session_app", "session", true},
		{"performance_estimators_clinic", "performance_estimators", true},
		{"patient", "", false},
		{"patient_aisn_data", "", false},
		{"app", "", false},
		{"_app", "", false},
		{"session_", "", false},
		{"session_APP", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			base, ok := BaseName(tt.table, suffixes)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBase, base)
		})
	}
}

func TestResolveFamilies(t *testing.T) {
	suffixes := suffixSet("app", "clinic")

	t.Run("groups siblings by base name", func(t *testing.T) {
		got := ResolveFamilies([]string{"session_clinic", "prescription_app", "session_app", "prescription_clinic"}, suffixes)
		assert.Equal(t, []core.Family{
			{BaseName: "prescription", Tables: []string{"prescription_app", "prescription_clinic"}},
			{BaseName: "session", Tables: []string{"session_app", "session_clinic"}},
		}, got)
	})

	t.Run("single suffixed table is not a family", func(t *testing.T) {
		got := ResolveFamilies([]string{"recording_app", "patient"}, suffixes)
		assert.Empty(t, got)
	})

	t.Run("duplicate names do not form a family", func(t *testing.T) {
		got := ResolveFamilies([]string{"recording_app", "recording_app"}, suffixes)
		assert.Empty(t, got)
	})

	t.Run("independent of input order", func(t *testing.T) {
		a := ResolveFamilies([]string{"x_app", "y_clinic", "x_clinic", "y_app"}, suffixes)
		b := ResolveFamilies([]string{"y_app", "x_clinic", "y_clinic", "x_app"}, suffixes)
		assert.Equal(t, a, b)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ResolveFamilies(nil, suffixes))
	})
}

func TestTitleize(t *testing.T) {
	assert.Equal(t, "Patient Aisn Data", Titleize("patient_aisn_data"))
	assert.Equal(t, "Session", Titleize("session"))
	assert.Equal(t, "Difficulty Modulators", Titleize("difficulty_modulators"))
	assert.Equal(t, "", Titleize(""))
}
