package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Titleize turns a snake_case identifier into a display label:
// "patient_aisn_data" becomes "Patient Aisn Data".
func Titleize(name string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
