// internal/matching/normalize/states.go
package normalize

import (
	"sort"
	"strings"
)

// stateAbbreviations maps two-letter USPS codes to canonical state names.
var stateAbbreviations = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// stateNames maps lowercased full names to canonical state names.
var stateNames = buildStateNames()

func buildStateNames() map[string]string {
	m := make(map[string]string, len(stateAbbreviations))
	for _, name := range stateAbbreviations {
		m[strings.ToLower(name)] = name
	}
	return m
}

// stateNeighbors holds land-border adjacency per canonical state name.
// Corner-only touches (four corners) are not counted. The table must stay
// symmetric in both directions; TestStateAdjacencySymmetry enforces it.
var stateNeighbors = map[string][]string{
	"Alabama":        {"Florida", "Georgia", "Mississippi", "Tennessee"},
	"Alaska":         {},
	"Arizona":        {"California", "Nevada", "New Mexico", "Utah"},
	"Arkansas":       {"Louisiana", "Mississippi", "Missouri", "Oklahoma", "Tennessee", "Texas"},
	"California":     {"Arizona", "Nevada", "Oregon"},
	"Colorado":       {"Kansas", "Nebraska", "New Mexico", "Oklahoma", "Utah", "Wyoming"},
	"Connecticut":    {"Massachusetts", "New York", "Rhode Island"},
	"Delaware":       {"Maryland", "New Jersey", "Pennsylvania"},
	"Florida":        {"Alabama", "Georgia"},
	"Georgia":        {"Alabama", "Florida", "North Carolina", "South Carolina", "Tennessee"},
	"Hawaii":         {},
	"Idaho":          {"Montana", "Nevada", "Oregon", "Utah", "Washington", "Wyoming"},
	"Illinois":       {"Indiana", "Iowa", "Kentucky", "Missouri", "Wisconsin"},
	"Indiana":        {"Illinois", "Kentucky", "Michigan", "Ohio"},
	"Iowa":           {"Illinois", "Minnesota", "Missouri", "Nebraska", "South Dakota", "Wisconsin"},
	"Kansas":         {"Colorado", "Missouri", "Nebraska", "Oklahoma"},
	"Kentucky":       {"Illinois", "Indiana", "Missouri", "Ohio", "Tennessee", "Virginia", "West Virginia"},
	"Louisiana":      {"Arkansas", "Mississippi", "Texas"},
	"Maine":          {"New Hampshire"},
	"Maryland":       {"Delaware", "Pennsylvania", "Virginia", "West Virginia"},
	"Massachusetts":  {"Connecticut", "New Hampshire", "New York", "Rhode Island", "Vermont"},
	"Michigan":       {"Indiana", "Ohio", "Wisconsin"},
	"Minnesota":      {"Iowa", "North Dakota", "South Dakota", "Wisconsin"},
	"Mississippi":    {"Alabama", "Arkansas", "Louisiana", "Tennessee"},
	"Missouri":       {"Arkansas", "Illinois", "Iowa", "Kansas", "Kentucky", "Nebraska", "Oklahoma", "Tennessee"},
	"Montana":        {"Idaho", "North Dakota", "South Dakota", "Wyoming"},
	"Nebraska":       {"Colorado", "Iowa", "Kansas", "Missouri", "South Dakota", "Wyoming"},
	"Nevada":         {"Arizona", "California", "Idaho", "Oregon", "Utah"},
	"New Hampshire":  {"Maine", "Massachusetts", "Vermont"},
	"New Jersey":     {"Delaware", "New York", "Pennsylvania"},
	"New Mexico":     {"Arizona", "Colorado", "Oklahoma", "Texas"},
	"New York":       {"Connecticut", "Massachusetts", "New Jersey", "Pennsylvania", "Vermont"},
	"North Carolina": {"Georgia", "South Carolina", "Tennessee", "Virginia"},
	"North Dakota":   {"Minnesota", "Montana", "South Dakota"},
	"Ohio":           {"Indiana", "Kentucky", "Michigan", "Pennsylvania", "West Virginia"},
	"Oklahoma":       {"Arkansas", "Colorado", "Kansas", "Missouri", "New Mexico", "Texas"},
	"Oregon":         {"California", "Idaho", "Nevada", "Washington"},
	"Pennsylvania":   {"Delaware", "Maryland", "New Jersey", "New York", "Ohio", "West Virginia"},
	"Rhode Island":   {"Connecticut", "Massachusetts"},
	"South Carolina": {"Georgia", "North Carolina"},
	"South Dakota":   {"Iowa", "Minnesota", "Montana", "Nebraska", "North Dakota", "Wyoming"},
	"Tennessee":      {"Alabama", "Arkansas", "Georgia", "Kentucky", "Mississippi", "Missouri", "North Carolina", "Virginia"},
	"Texas":          {"Arkansas", "Louisiana", "New Mexico", "Oklahoma"},
	"Utah":           {"Arizona", "Colorado", "Idaho", "Nevada", "Wyoming"},
	"Vermont":        {"Massachusetts", "New Hampshire", "New York"},
	"Virginia":       {"Kentucky", "Maryland", "North Carolina", "Tennessee", "West Virginia"},
	"Washington":     {"Idaho", "Oregon"},
	"West Virginia":  {"Kentucky", "Maryland", "Ohio", "Pennsylvania", "Virginia"},
	"Wisconsin":      {"Illinois", "Iowa", "Michigan", "Minnesota"},
	"Wyoming":        {"Colorado", "Idaho", "Montana", "Nebraska", "South Dakota", "Utah"},
}

// ExtractState resolves a free-text location or state string to one of the 50
// canonical state names. Resolution order: direct full-name match, two-letter
// abbreviation, then token/substring search across a comma-delimited string.
// Unresolvable input returns "".
func ExtractState(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	if name, ok := stateNames[strings.ToLower(trimmed)]; ok {
		return name
	}

	if len(trimmed) == 2 {
		if name, ok := stateAbbreviations[strings.ToUpper(trimmed)]; ok {
			return name
		}
	}

	// "Dallas, TX" or "Houston, Texas, USA"
	for _, part := range strings.Split(trimmed, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		if name, ok := stateNames[strings.ToLower(token)]; ok {
			return name
		}
		if len(token) == 2 {
			if name, ok := stateAbbreviations[strings.ToUpper(token)]; ok {
				return name
			}
		}
	}

	lower := strings.ToLower(trimmed)
	for _, name := range statesByLength {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}

	return ""
}

// statesByLength lists canonical names longest-first so a substring scan of
// "West Virginia" never resolves to "Virginia".
var statesByLength = buildStatesByLength()

func buildStatesByLength() []string {
	names := make([]string, 0, len(stateAbbreviations))
	for _, name := range stateAbbreviations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// AreNeighboringStates reports whether two canonical state names share a border.
func AreNeighboringStates(a, b string) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	for _, neighbor := range stateNeighbors[a] {
		if neighbor == b {
			return true
		}
	}
	return false
}
