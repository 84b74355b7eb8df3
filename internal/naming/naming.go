// Package naming formats internal identifiers for display in API responses.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayOverrides maps identifiers whose display form is not a plain title
// casing of the snake_case name.
var displayOverrides = map[string]string{
	"hp":               "HP",
	"atk":              "ATK",
	"def":              "DEF",
	"hp_percent":       "HP%",
	"atk_percent":      "ATK%",
	"def_percent":      "DEF%",
	"crit_rate":        "CRIT Rate",
	"crit_damage":      "CRIT DMG",
	"elemental_damage": "Elemental DMG Bonus",
	"physical_damage":  "Physical DMG Bonus",
}

// DisplayName converts a snake_case identifier to its human-readable form.
func DisplayName(id string) string {
	if name, ok := displayOverrides[id]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
