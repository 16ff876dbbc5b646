package rest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var cityCaser = cases.Title(language.English)

// normalizeCity trims and title-cases a city name so "quezon city" and
// "Quezon City" land in the same aggregation group.
func normalizeCity(city string) string {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return ""
	}
	return cityCaser.String(strings.ToLower(trimmed))
}
