package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Driver Type Tests
// ==========================

func TestDriverType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"canonical passes through", "company", DriverTypeCompany},
		{"owner operator variant", "Owner Operator", DriverTypeOwnerOperator},
		{"o/o shorthand", "O/O", DriverTypeOwnerOperator},
		{"underscore variant", "owner_operator", DriverTypeOwnerOperator},
		{"lease purchase", "Lease Purchase", DriverTypeLease},
		{"trainee maps to student", "Trainee", DriverTypeStudent},
		{"whitespace trimmed", "  company driver  ", DriverTypeCompany},
		{"empty is empty", "", ""},
		{"whitespace only is empty", "   ", ""},
		{"unknown passes through folded", "Freelance", "freelance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DriverType(tt.input))
		})
	}
}

// ==========================
// License Class Tests
// ==========================

func TestLicenseClass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare letter", "A", LicenseClassA},
		{"class prefix", "Class B", LicenseClassB},
		{"cdl hyphen", "CDL-A", LicenseClassA},
		{"cdl space", "cdl c", LicenseClassC},
		{"learners permit", "Learner's Permit", LicenseClassPermit},
		{"empty is empty", "", ""},
		{"unknown passes through folded", "Class D", "class d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LicenseClass(tt.input))
		})
	}
}

// ==========================
// Experience Tests
// ==========================

func TestExperience(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"none", "none", 0},
		{"less than a year", "Less than 1 year", 1},
		{"one to three", "1-3 years", 2},
		{"three to five", "3-5", 3},
		{"five plus", "5+ years", 4},
		{"five plus short", "5+", 4},
		{"empty is unknown", "", -1},
		{"garbage is unknown", "a while", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Experience(tt.input))
		})
	}
}

func TestExperienceFromYears(t *testing.T) {
	assert.Equal(t, -1, ExperienceFromYears(-1))
	assert.Equal(t, 0, ExperienceFromYears(0))
	assert.Equal(t, 2, ExperienceFromYears(1))
	assert.Equal(t, 2, ExperienceFromYears(2))
	assert.Equal(t, 3, ExperienceFromYears(3))
	assert.Equal(t, 3, ExperienceFromYears(4))
	assert.Equal(t, 4, ExperienceFromYears(5))
	assert.Equal(t, 4, ExperienceFromYears(25))
}

// ==========================
// Route / Freight / Team Tests
// ==========================

func TestRouteType(t *testing.T) {
	assert.Equal(t, RouteOTR, RouteType("Over The Road"))
	assert.Equal(t, RouteOTR, RouteType("long haul"))
	assert.Equal(t, RouteLocal, RouteType("Home Daily"))
	assert.Equal(t, RouteLTL, RouteType("Less Than Truckload"))
	assert.Equal(t, "", RouteType(""))
	assert.Equal(t, "shuttle", RouteType("Shuttle"))
}

func TestFreightType(t *testing.T) {
	assert.Equal(t, FreightBox, FreightType("Dry Van"))
	assert.Equal(t, FreightTanker, FreightType("tank"))
	assert.Equal(t, FreightRefrigerated, FreightType("Reefer"))
	assert.Equal(t, FreightCarHauler, FreightType("Auto Hauler"))
	assert.Equal(t, FreightHopper, FreightType("grain"))
	assert.Equal(t, FreightLowboy, FreightType("RGN"))
	assert.Equal(t, FreightOversized, FreightType("heavy haul"))
	assert.Equal(t, "", FreightType("  "))
	assert.Equal(t, "logging", FreightType("Logging"))
}

func TestTeamPreference(t *testing.T) {
	assert.Equal(t, TeamSolo, TeamPreference("Solo"))
	assert.Equal(t, TeamBoth, TeamPreference("Either"))
	assert.Equal(t, TeamBoth, TeamPreference("any"))
	assert.Equal(t, "", TeamPreference(""))
}
