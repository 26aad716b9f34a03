package taxonomy

import (
	"github.com/poiesic/taxonomist/core"
)

func table(name string, groups []string, desc string, columns ...string) core.TableMetadata {
	return core.TableMetadata{
		Name:        name,
		Description: desc,
		Groups:      groups,
		Columns:     columns,
	}
}

// fixtureMetadata is a small slice of the clinical schema covering families,
// overrides, ungrouped tables and declared group parents.
func fixtureMetadata() *core.Metadata {
	return &core.Metadata{
		Info: core.MetadataInfo{
			Groups: map[string]core.GroupMetadata{
				"Patient": {
					Description:  "declared patient text",
					ParentGroups: []string{"AISN", "People", "Custom"},
				},
				"Custom": {
					Description:  "custom group",
					ParentGroups: []string{"Patient"},
				},
			},
		},
		Tables: []core.TableMetadata{
			table("patient", []string{"Patient"}, "raw patient",
				"id (INT): Primary key",
				"hospital_id (INT): Hospital reference",
				"name (VARCHAR)"),
			table("hospital", []string{"Hospital"}, "Hospitals",
				"id (INT)",
				"name (VARCHAR): Hospital name"),
			table("session_app", []string{"sessions"}, "", "id (INT)", "prescription_id (INT)"),
			table("session_clinic", []string{"sessions"}, "", "id (INT)", "prescription_id (INT)"),
			table("prescription_app", []string{"Prescriptions"}, "", "id (INT)"),
			table("prescription_clinic", []string{"Prescriptions"}, "", "id (INT)"),
			table("recording_app", []string{"Recordings"}, "", "session_id (INT)"),
			table("patient_aisn_data", []string{"patient_aisn_data"}, "", "patient_id (INT)"),
			table("clinical_trials", nil, "Trial scores"),
			table("metric_app", []string{"Recordings"}, "", "displacement (FLOAT)"),
			table("metric_plus", nil, ""),
			table("recsys_metrics", []string{"RecSys"}, "raw metrics", "delta_dm (FLOAT): change in dm"),
			table("prescription_staging", []string{"RecSys"}, "staging"),
			table("station", nil, "stations"),
			table("mystery_table", nil, "???"),
		},
	}
}
